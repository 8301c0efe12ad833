// Package srs implements the SM-2 spaced-repetition variant used for topic
// revision scheduling. All functions are pure computations over an explicit
// State; persistence is the caller's problem.
package srs

import (
	"errors"
	"math"
	"time"
)

const (
	// MinEaseFactor is the hard floor for the ease factor.
	MinEaseFactor = 1.3
	// InitialEaseFactor seeds every new schedule.
	InitialEaseFactor = 2.5
	// PassingQuality is the threshold below which a review counts as a lapse.
	PassingQuality = 3
)

// ErrInvalidQuality is returned by Review for quality outside [0,5].
var ErrInvalidQuality = errors.New("srs: quality out of range [0,5]")

// State is the full spaced-repetition state for one (user, topic) pair.
// It round-trips to the persisted schedule row by explicit field copy.
type State struct {
	EaseFactor    float64
	Interval      int
	Repetitions   int
	ScheduledDate time.Time
}

// NewState returns the state for a topic that has never been scheduled.
func NewState(now time.Time) State {
	return State{
		EaseFactor:    InitialEaseFactor,
		Interval:      0,
		Repetitions:   0,
		ScheduledDate: now,
	}
}

// ScheduleFirstReview sets up the day-1 review. The lifecycle manager
// guarantees this runs at most once per (user, topic); the function itself
// overwrites whatever state it is given.
func (s *State) ScheduleFirstReview(now time.Time) {
	s.Interval = 1
	s.Repetitions = 1
	s.ScheduledDate = now.AddDate(0, 0, 1)
}

// Review applies one self-reported recall rating in [0,5].
//
// Quality < 3 is a lapse: repetitions and interval reset, the ease factor is
// left untouched. Quality >= 3 adjusts the ease factor (floored at 1.3) and
// grows the interval on the 1/6/interval*ease ladder, selecting the branch by
// the pre-increment repetition count.
//
// Interval rounding is math.Round, i.e. half away from zero.
func (s *State) Review(quality int, now time.Time) error {
	if quality < 0 || quality > 5 {
		return ErrInvalidQuality
	}

	if quality < PassingQuality {
		s.Repetitions = 0
		s.Interval = 1
	} else {
		q := float64(quality)
		ease := s.EaseFactor + (0.1 - (5-q)*(0.08+(5-q)*0.02))
		if ease < MinEaseFactor {
			ease = MinEaseFactor
		}
		s.EaseFactor = ease

		switch {
		case s.Repetitions == 0:
			s.Interval = 1
		case s.Repetitions == 1:
			s.Interval = 6
		default:
			s.Interval = int(math.Round(float64(s.Interval) * ease))
		}
		s.Repetitions++
	}

	if s.Interval < 1 {
		s.Interval = 1
	}
	s.ScheduledDate = now.AddDate(0, 0, s.Interval)
	return nil
}
