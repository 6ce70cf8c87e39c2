// gpsgen generates a realistic GPS workload CSV for demos and manual
// testing. It lives outside the core pipeline on purpose: the pipeline
// never generates or assumes data, it only consumes what it is given.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	log "github.com/sirupsen/logrus"
)

var positions = []string{"GK", "DEF", "DEF", "DEF", "MID", "MID", "MID", "MID", "FWD", "FWD"}

type vendorFormat struct {
	headers []string
}

// header sets per supported GPS vendor, matching the synonym table
var vendors = map[string]vendorFormat{
	"generic": {headers: []string{
		"Date", "Player", "Position", "Session Type", "Duration (min)",
		"Total Distance (m)", "HSR Distance (m)", "Sprint Distance (m)",
		"Accelerations", "Decelerations", "Player Load (AU)", "Max Speed (km/h)",
	}},
	"statsports": {headers: []string{
		"Date", "Player Name", "Position", "Session Type", "Duration",
		"Total Distance", "High Speed Running", "Sprint Distance",
		"Accels", "Decels", "Dynamic Stress Load", "Max Speed",
	}},
	"catapult": {headers: []string{
		"Date", "Athlete Name", "Position", "Session Type", "Duration",
		"Total Distance", "Velocity Band 5 Total Distance", "Velocity Band 6 Total Distance",
		"Acceleration Band 3 Total Effort Count", "Deceleration Band 3 Total Effort Count",
		"Total Player Load", "Maximum Velocity",
	}},
}

func main() {
	nPlayers := flag.Int("players", 20, "number of players in the squad")
	nWeeks := flag.Int("weeks", 8, "number of weeks of sessions")
	vendor := flag.String("vendor", "generic", "csv header format [generic | statsports | catapult]")
	seed := flag.Int64("seed", 42, "random seed")
	out := flag.String("out", "gps_demo.csv", "output csv path")
	flag.Parse()

	format, ok := vendors[*vendor]
	if !ok {
		log.Fatalf("unknown vendor format: %s", *vendor)
	}

	faker := gofakeit.New(*seed)

	players := make([]string, *nPlayers)
	for i := range players {
		players[i] = faker.Name()
	}

	outFile, err := os.Create(*out)
	if err != nil {
		log.Fatalf("create output file: %s", err)
	}
	defer func() {
		if err := outFile.Close(); err != nil {
			log.Errorf("close output file: %s", err)
		}
	}()

	csvWriter := csv.NewWriter(outFile)
	if err := csvWriter.Write(format.headers); err != nil {
		log.Fatalf("write headers: %s", err)
	}

	startDate := time.Now().UTC().AddDate(0, 0, -7*(*nWeeks))
	records := 0

	for week := 0; week < *nWeeks; week++ {
		for session := 0; session < 4; session++ {
			sessionDate := startDate.AddDate(0, 0, week*7+session*2)
			sessionType := "Training"
			matchFactor := 1.0
			if session == 3 {
				sessionType = "Match"
				matchFactor = 1.3
			}

			for i, player := range players {
				pos := positions[i%len(positions)]
				posFactor := 0.9
				switch pos {
				case "MID":
					posFactor = 1.0
				case "GK":
					posFactor = 0.6
				}

				// progressive overload across the generated weeks
				weekFactor := 0.85 + float64(week)/float64(*nWeeks)*0.3
				combined := posFactor * matchFactor * weekFactor * faker.Float64Range(0.85, 1.15)

				record := []string{
					sessionDate.Format("2006-01-02"),
					player,
					pos,
					sessionType,
					strconv.Itoa(int(90 * matchFactor * faker.Float64Range(0.9, 1.1))),
					strconv.Itoa(int(6500 * combined)),
					strconv.Itoa(int(1200 * combined)),
					strconv.Itoa(int(300 * combined)),
					strconv.Itoa(int(60 * combined)),
					strconv.Itoa(int(55 * combined)),
					fmt.Sprintf("%.1f", 650*combined),
					fmt.Sprintf("%.1f", 28+faker.Float64Range(-3, 3)),
				}
				if err := csvWriter.Write(record); err != nil {
					log.Fatalf("write record: %s", err)
				}
				records++
			}
		}
	}

	csvWriter.Flush()
	if err := csvWriter.Error(); err != nil {
		log.Fatalf("flush csv: %s", err)
	}

	log.Infof("wrote %d records for %d players to %s [%s format]", records, *nPlayers, *out, *vendor)
}
