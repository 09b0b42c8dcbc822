// Command gpa-calc computes a GPA summary, and optionally a forecast, from a
// JSON list of courses without touching the database.
//
//	gpa-calc -file courses.json -target 3.75 -remaining 6
//
// Each course uses the same fields as POST /api/v1/gpa/courses.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strings"

	"github.com/ricogpa/ricogpa-backend/internal/gpa"
	"github.com/ricogpa/ricogpa-backend/internal/logger"
	"github.com/ricogpa/ricogpa-backend/internal/model"
	"github.com/ricogpa/ricogpa-backend/internal/validator"
)

type report struct {
	Summary  model.Summary         `json:"summary"`
	Forecast *model.ForecastResult `json:"forecast,omitempty"`
}

func main() {
	log := logger.New(os.Stderr, os.Getenv("LOG_LEVEL"), "pretty")
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		log.Fatal().Err(err).Msg("gpa-calc failed")
	}
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("gpa-calc", flag.ContinueOnError)
	file := fs.String("file", "-", "Course list JSON file, - for stdin")
	target := fs.Float64("target", math.NaN(), "Target cumulative GPA (0-5); enables the forecast")
	remaining := fs.Float64("remaining", 0, "Credit hours still to be taken")
	if err := fs.Parse(args); err != nil {
		return err
	}

	in := stdin
	if *file != "-" {
		f, err := os.Open(*file)
		if err != nil {
			return fmt.Errorf("open course list: %w", err)
		}
		defer f.Close()
		in = f
	}

	courses, err := readCourses(in)
	if err != nil {
		return err
	}

	out := report{Summary: gpa.Summarize(courses)}
	if !math.IsNaN(*target) {
		if *target < 0 || *target > 5 || *remaining < 0 || math.IsInf(*remaining, 0) {
			return fmt.Errorf("target must be within 0-5 and remaining credits non-negative")
		}
		f := gpa.Forecast(courses, *target, *remaining)
		out.Forecast = &f
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func readCourses(r io.Reader) ([]model.Course, error) {
	var reqs []model.CreateCourseRequest
	if err := json.NewDecoder(r).Decode(&reqs); err != nil {
		return nil, fmt.Errorf("decode course list: %w", err)
	}

	courses := make([]model.Course, 0, len(reqs))
	for i := range reqs {
		req := &reqs[i]
		if fields := validator.Struct(req); fields != nil {
			return nil, fmt.Errorf("course %d: %s", i+1, joinFields(fields))
		}

		ch := req.CreditHours
		c := model.Course{
			Name:        req.Name,
			Year:        req.Year,
			WeightClass: req.WeightClass,
			CreditHours: &ch,
			Grade:       req.Grade,
		}
		if c.Grade != "" {
			gp := gpa.Resolve(c.Grade, c.WeightClass)
			c.GradePoint = &gp
		}
		courses = append(courses, c)
	}
	return courses, nil
}

func joinFields(fields map[string]string) string {
	msgs := make([]string, 0, len(fields))
	for _, msg := range fields {
		msgs = append(msgs, msg)
	}
	sort.Strings(msgs)
	return strings.Join(msgs, "; ")
}
