package babynames

import (
	"cmp"
	"slices"
)

// Gender is the gender inferred from the column a name was listed in.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// Valid reports whether g is one of the known genders.
func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale
}

// Name is one entry of the name dimension.
type Name struct {
	Value  string
	Gender Gender
}

// YearlyRanking is one row of a yearly ranking file.
// An empty Boy or Girl means the rank had no name in that column.
type YearlyRanking struct {
	Year int
	Rank int
	Boy  string
	Girl string
}

// Dataset holds everything extracted from a source tree.
// Names are unique on (Value, Gender).
type Dataset struct {
	Names    []Name
	Rankings []YearlyRanking
}

// Sort orders names by (name, gender) and rankings by (year, rank, boy, girl).
// Absent names sort before present ones.
func (d *Dataset) Sort() {
	slices.SortFunc(d.Names, CompareNames)
	slices.SortFunc(d.Rankings, CompareRankings)
}

// CompareNames orders names lexicographically by value, then gender.
func CompareNames(a, b Name) int {
	return cmp.Or(
		cmp.Compare(a.Value, b.Value),
		cmp.Compare(a.Gender, b.Gender),
	)
}

// CompareRankings orders rankings by year, rank, boy and girl.
func CompareRankings(a, b YearlyRanking) int {
	return cmp.Or(
		cmp.Compare(a.Year, b.Year),
		cmp.Compare(a.Rank, b.Rank),
		cmp.Compare(a.Boy, b.Boy),
		cmp.Compare(a.Girl, b.Girl),
	)
}

// FileReport describes the outcome of processing one source file.
type FileReport struct {
	// Path is relative to the source root, using forward slashes
	Path string

	// Year is zero when the directory name could not be parsed
	Year int

	// Rows is the number of ranking rows taken from the file
	Rows int

	// Err is set when the file was skipped
	Err error
}

// ExtractResult is the output of the extraction stage.
type ExtractResult struct {
	Dataset Dataset
	Files   []FileReport
}

// Failed returns the reports of files that were skipped.
func (r *ExtractResult) Failed() []FileReport {
	var failed []FileReport
	for _, f := range r.Files {
		if f.Err != nil {
			failed = append(failed, f)
		}
	}
	return failed
}

// Processed returns the number of files that contributed rows to the dataset.
func (r *ExtractResult) Processed() int {
	return len(r.Files) - len(r.Failed())
}

// WriteSummary reports what a Sink did with a dataset.
type WriteSummary struct {
	// Destination is a human-readable description of where data went
	Destination string

	NamesWritten    int
	NamesSkipped    int
	RankingsWritten int
	RankingsSkipped int
}
