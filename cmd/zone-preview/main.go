package main

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/chrissnell/dikeprep/internal/profile"
	"github.com/chrissnell/dikeprep/internal/zones"
	"github.com/chrissnell/dikeprep/pkg/prfl"
)

func main() {
	var (
		prflFile = flag.String("prfl", "", "Path to the PRFL dike profile (required)")
		kind     = flag.String("kind", "horizontal", "Zone kind: 'horizontal' or 'vertical'")
		lower    = flag.Float64("min", 0, "Lower bound of the zone (x for horizontal, z for vertical)")
		upper    = flag.Float64("max", 0, "Upper bound of the zone")
		count    = flag.Int("n", 0, "Number of points in the zone")
		spacing  = flag.Float64("d", 0, "Maximum spacing between points")
		side     = flag.String("side", string(profile.OuterSlope), "Slope of a vertical zone: 'outer' or 'inner'")
		merge    = flag.Bool("include-profile-points", false, "Merge the profile points inside the zone")
	)
	flag.Parse()

	if *prflFile == "" {
		fmt.Fprintf(os.Stderr, "Usage: %s -prfl <dike.prfl> -kind horizontal -min 0 -max 20 -n 5\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}

	dike, err := prfl.Read(*prflFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading profile: %v\n", err)
		os.Exit(1)
	}

	var n *int
	if *count != 0 {
		n = count
	}
	var d *float64
	if *spacing != 0 {
		d = spacing
	}

	var definition zones.Definition
	switch *kind {
	case "horizontal":
		definition = zones.HorizontalZone{XMin: *lower, XMax: *upper, Count: n, MaxSpacing: d, IncludeProfilePoints: *merge}
	case "vertical":
		definition = zones.VerticalZone{
			ZMin: *lower, ZMax: *upper, Count: n, MaxSpacing: d,
			Side: profile.SlopeSide(*side), IncludeProfilePoints: *merge,
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown zone kind: %s\n", *kind)
		os.Exit(1)
	}

	xs, err := definition.Coordinates(dike)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating zone: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Profile: %d points, outer toe %g, outer crest %g\n",
		len(dike.XPositions), dike.Points.OuterToe, dike.Points.OuterCrest)
	fmt.Printf("Zone: %d locations\n\n", len(xs))

	zs, err := dike.Elevations(xs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error interpolating elevations: %v\n", err)
		os.Exit(1)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "#\tx\tz\t")
	for i, x := range xs {
		fmt.Fprintf(w, "%d\t%.3f\t%.3f\t\n", i+1, x, zs[i])
	}
	w.Flush()
}
