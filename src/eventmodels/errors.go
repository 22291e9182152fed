package eventmodels

import "fmt"

var InvalidInputErr = fmt.Errorf("invalid input")
var NoSurfaceDataErr = fmt.Errorf("no data points for surface series")

type ErrorDTO struct {
	Msg string `json:"msg"`
}
