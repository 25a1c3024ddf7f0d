package segmenter

import "fmt"

// Config holds the segmentation thresholds. Durations are in seconds.
type Config struct {
	LongPause     float64 `yaml:"long_pause_sec"`
	TopicPause    float64 `yaml:"topic_pause_sec"`
	NaturalPause  float64 `yaml:"natural_pause_sec"`
	MaxDuration   float64 `yaml:"max_duration_sec"`
	SoftDuration  float64 `yaml:"soft_duration_sec"`
	MinDuration   float64 `yaml:"min_duration_sec"`
	SpeakerWindow int     `yaml:"speaker_window"`
	SpeakerMinRun int     `yaml:"speaker_min_run"`
	TopicWindow   int     `yaml:"topic_window"`
	TopicMinWords int     `yaml:"topic_min_words"`

	// SpeakerRunStart additionally requires the incoming word to carry the
	// new majority tag, so a break lands on the first word of the new run.
	SpeakerRunStart bool `yaml:"speaker_run_start"`
}

// DefaultConfig returns the thresholds tuned for two-party interview audio.
func DefaultConfig() Config {
	return Config{
		LongPause:     8.0,
		TopicPause:    4.0,
		NaturalPause:  1.5,
		MaxDuration:   45.0,
		SoftDuration:  25.0,
		MinDuration:   3.0,
		SpeakerWindow: 8,
		SpeakerMinRun: 6,
		TopicWindow:   10,
		TopicMinWords: 5,
	}
}

// Validate checks that thresholds are positive and consistently ordered.
func (c Config) Validate() error {
	for name, v := range map[string]float64{
		"long_pause_sec":    c.LongPause,
		"topic_pause_sec":   c.TopicPause,
		"natural_pause_sec": c.NaturalPause,
		"max_duration_sec":  c.MaxDuration,
		"soft_duration_sec": c.SoftDuration,
		"min_duration_sec":  c.MinDuration,
	} {
		if v <= 0 {
			return fmt.Errorf("segmenter: %s must be positive, got %v", name, v)
		}
	}
	if c.SpeakerWindow <= 0 || c.SpeakerMinRun <= 0 || c.SpeakerMinRun > c.SpeakerWindow {
		return fmt.Errorf("segmenter: speaker_min_run (%d) must be within 1..speaker_window (%d)", c.SpeakerMinRun, c.SpeakerWindow)
	}
	if c.TopicWindow <= 0 || c.TopicMinWords <= 0 || c.TopicMinWords > c.TopicWindow {
		return fmt.Errorf("segmenter: topic_min_words (%d) must be within 1..topic_window (%d)", c.TopicMinWords, c.TopicWindow)
	}
	if c.TopicPause > c.LongPause {
		return fmt.Errorf("segmenter: topic_pause_sec %v exceeds long_pause_sec %v", c.TopicPause, c.LongPause)
	}
	if c.SoftDuration > c.MaxDuration || c.MinDuration > c.SoftDuration {
		return fmt.Errorf("segmenter: durations must satisfy min <= soft <= max")
	}
	return nil
}
