package eventmodels

import "fmt"

type ExerciseStyle string

func (e ExerciseStyle) Validate() error {
	if e != European && e != American {
		return fmt.Errorf("ExerciseStyle: Validate: invalid exercise style %s: %w", e, InvalidInputErr)
	}

	return nil
}

const (
	European ExerciseStyle = "european"
	American ExerciseStyle = "american"
)
