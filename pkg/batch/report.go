package batch

import "github.com/samber/lo"

// Record describes one converted image.
type Record struct {
	Name   string `yaml:"name"`
	Source string `yaml:"source"`
	Output string `yaml:"output"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Size   int    `yaml:"size"`
}

type Report struct {
	Records []Record
}

// Total returns the number of bytes written across all records.
func (r *Report) Total() int {
	return lo.Reduce(r.Records, func(agg int, rec Record, _ int) int {
		return agg + rec.Size
	}, 0)
}
