package passage

import (
	"fmt"
	"strings"
)

// Topic is the subject area of a generated passage.
type Topic string

const (
	TopicTechnology  Topic = "Technology"
	TopicScience     Topic = "Science"
	TopicHistory     Topic = "History"
	TopicArts        Topic = "Arts"
	TopicTravel      Topic = "Travel"
	TopicFood        Topic = "Food"
	TopicEnvironment Topic = "Environment"
	TopicSports      Topic = "Sports"
)

// Topics lists every topic in menu order.
var Topics = []Topic{
	TopicTechnology, TopicScience, TopicHistory, TopicArts,
	TopicTravel, TopicFood, TopicEnvironment, TopicSports,
}

// ParseTopic matches s against Topics, ignoring case.
func ParseTopic(s string) (Topic, error) {
	for _, t := range Topics {
		if strings.EqualFold(string(t), strings.TrimSpace(s)) {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown topic %q", s)
}

// Difficulty is the learner level a passage is written for.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// Difficulties lists every difficulty from easiest to hardest.
var Difficulties = []Difficulty{DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced}

// ParseDifficulty matches s against Difficulties, ignoring case.
func ParseDifficulty(s string) (Difficulty, error) {
	for _, d := range Difficulties {
		if strings.EqualFold(string(d), strings.TrimSpace(s)) {
			return d, nil
		}
	}
	return "", fmt.Errorf("unknown difficulty %q (want beginner, intermediate or advanced)", s)
}

// Label returns the capitalized difficulty name.
func (d Difficulty) Label() string {
	if d == "" {
		return ""
	}
	return strings.ToUpper(string(d[:1])) + string(d[1:])
}

// Input is what the generator needs to write one passage.
type Input struct {
	Topic      Topic
	Difficulty Difficulty

	// PriorOpenings are first sentences of passages already shown in this
	// run, so the model does not repeat itself.
	PriorOpenings []string
}

// Passage is generated reading text ready for exercise building.
type Passage struct {
	Text       string
	Topic      Topic
	Difficulty Difficulty
}
