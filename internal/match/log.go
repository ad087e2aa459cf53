package match

import (
	"cmp"

	"golang.org/x/exp/slices"
)

// Log keeps regular season and playoff records in two independent sequences.
type Log struct {
	regular []Record
	playoff []Record
}

func NewLog() *Log {
	return &Log{}
}

func (l *Log) RecordRegular(r Record) {
	l.regular = append(l.regular, r)
}

func (l *Log) RecordPlayoff(r Record) {
	l.playoff = append(l.playoff, r)
}

// Record appends r to the sequence matching its scope.
func (l *Log) Record(r Record) {
	if r.IsPlayoff() {
		l.RecordPlayoff(r)

		return
	}

	l.RecordRegular(r)
}

// Reorganize sorts each sequence by descending point differential, keeping ties in order.
func (l *Log) Reorganize() {
	byDifferential := func(a, b Record) int {
		return cmp.Compare(b.Differential(), a.Differential())
	}

	slices.SortStableFunc(l.regular, byDifferential)
	slices.SortStableFunc(l.playoff, byDifferential)
}

func (l *Log) Regular() []Record {
	return slices.Clone(l.regular)
}

func (l *Log) Playoff() []Record {
	return slices.Clone(l.playoff)
}

func (l *Log) Len() int {
	return len(l.regular) + len(l.playoff)
}
