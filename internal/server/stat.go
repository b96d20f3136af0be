package server

import (
	"untile/pkg/model"

	"github.com/dustin/go-humanize"
)

type humanizedDescrambleStats struct {
	model.DescrambleStats
	SetupHuman               string `json:"setup_human"`
	ReassemblyHuman          string `json:"reassembly_human"`
	OutputImageEncodingHuman string `json:"output_image_encoding_human"`
	OutputSizeHuman          string `json:"output_size_human"`
}

func toHumanizedDescrambleStats(stats model.DescrambleStats, outputSize int) humanizedDescrambleStats {
	return humanizedDescrambleStats{
		DescrambleStats:          stats,
		SetupHuman:               stats.Setup.String(),
		ReassemblyHuman:          stats.Reassembly.String(),
		OutputImageEncodingHuman: stats.OutputImageEncoding.String(),
		OutputSizeHuman:          humanize.Bytes(uint64(outputSize)),
	}
}
