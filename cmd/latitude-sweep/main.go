// latitude-sweep runs the simulation across a grid of latitudes and battery
// capacities and prints a comparison table of how each combination survives
// the year: unmet load, spilled surplus, and time spent empty.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"solar_battery_sim/internal/model"
	"solar_battery_sim/internal/simulator"
)

func main() {
	latsFlag := flag.String("latitudes", "0,20,36,45,55,65", "comma-separated latitudes in degrees")
	capsFlag := flag.String("capacities", "250,500,1000,2000,5000", "comma-separated battery capacities in Wh")
	loadW := flag.Float64("load", 25, "constant load in W")
	solarW := flag.Float64("solar", 100, "solar nominal output in W")
	stepMin := flag.Int("step", 45, "step size in minutes")
	flag.Parse()

	lats, err := parseFloats(*latsFlag)
	if err != nil {
		log.Fatalf("Invalid latitudes %q: %v", *latsFlag, err)
	}
	caps, err := parseFloats(*capsFlag)
	if err != nil {
		log.Fatalf("Invalid capacities %q: %v", *capsFlag, err)
	}
	sort.Float64s(lats)
	sort.Float64s(caps)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "Latitude\tCapacity Wh\tSolar kWh\tLoad kWh\tUnmet kWh\tSpilled kWh\tSteps empty\tMin SoC Wh")

	for _, lat := range lats {
		for _, capacity := range caps {
			p := model.DefaultParams()
			p.LatitudeDeg = lat
			p.BatteryCapacityWh = capacity
			p.LoadW = *loadW
			p.SolarNominalW = *solarW
			p.StepMinutes = *stepMin

			res, err := simulator.Run(p)
			if err != nil {
				log.Fatalf("Simulation failed for lat=%.1f cap=%.0f: %v", lat, capacity, err)
			}

			s := res.Summary
			fmt.Fprintf(w, "%.1f\t%.0f\t%.1f\t%.1f\t%.2f\t%.1f\t%d\t%.0f\n",
				lat, capacity, s.SolarKWh, s.LoadKWh, s.UnmetKWh, s.SpilledKWh, s.StepsAtEmpty, s.MinSoCWh)
		}
	}

	if err := w.Flush(); err != nil {
		log.Fatal(err)
	}
}

func parseFloats(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	out := make([]float64, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
