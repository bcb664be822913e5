// render-chart runs one simulation and writes the result as a PNG chart and,
// optionally, a CSV of the recorded series.
package main

import (
	"encoding/csv"
	"flag"
	"log"
	"os"
	"strconv"
	"time"

	"solar_battery_sim/internal/chart"
	"solar_battery_sim/internal/model"
	"solar_battery_sim/internal/simulator"
)

func main() {
	lat := flag.Float64("lat", 36, "latitude in degrees")
	loadW := flag.Float64("load", 25, "constant load in W")
	capacity := flag.Float64("capacity", 1000, "battery capacity in Wh")
	initial := flag.Float64("initial", 0, "initial charge in Wh")
	solarW := flag.Float64("solar", 100, "solar nominal output in W")
	stepMin := flag.Int("step", 45, "step size in minutes")
	startDay := flag.Int("start-day", 1, "start day of year (1-365)")
	endDay := flag.Int("end-day", 364, "end day of year (1-365)")
	outPNG := flag.String("out", "energy-plot.png", "output PNG path")
	outCSV := flag.String("csv", "", "optional output CSV path")
	flag.Parse()

	p := model.Params{
		LatitudeDeg:       *lat,
		LoadW:             *loadW,
		BatteryCapacityWh: *capacity,
		InitialChargeWh:   *initial,
		SolarNominalW:     *solarW,
		StepMinutes:       *stepMin,
		StartDay:          *startDay,
		EndDay:            *endDay,
	}

	res, err := simulator.Run(p)
	if err != nil {
		log.Fatalf("Simulation failed: %v", err)
	}

	if err := chart.WriteFile(res, *outPNG); err != nil {
		log.Fatalf("Writing chart: %v", err)
	}
	log.Printf("Chart written to %s", *outPNG)

	if *outCSV != "" {
		if err := writeCSV(res, *outCSV); err != nil {
			log.Fatalf("Writing CSV: %v", err)
		}
		log.Printf("CSV written to %s", *outCSV)
	}

	s := res.Summary
	log.Printf("Solar %.1f kWh, load %.1f kWh, unmet %.2f kWh, spilled %.1f kWh, final SoC %.0f Wh",
		s.SolarKWh, s.LoadKWh, s.UnmetKWh, s.SpilledKWh, s.FinalSoCWh)
}

func writeCSV(res simulator.Result, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"timestamp", "charge_wh", "solar_w", "daylight_h"}); err != nil {
		return err
	}
	for i, pt := range res.Charge.Points {
		row := []string{
			pt.Timestamp.Format(time.RFC3339),
			strconv.FormatFloat(pt.Value, 'f', 2, 64),
			strconv.FormatFloat(res.Solar.Points[i].Value, 'f', 2, 64),
			strconv.FormatFloat(res.Daylight.Points[i].Value, 'f', 3, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}
