package model

import (
	"time"
)

type DescrambleStats struct {
	Setup               time.Duration `json:"setup"`
	Reassembly          time.Duration `json:"reassembly"`
	OutputImageEncoding time.Duration `json:"output_image_encoding"`
	Groups              int           `json:"groups"`
	Tiles               int           `json:"tiles"`
}
