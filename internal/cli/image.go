package cli

import (
	"fmt"
	"runtime"
	"untile/internal/archive"
	"untile/pkg/config"
	untileImage "untile/pkg/image"

	"github.com/spf13/cobra"
)

func ImageCommands() *cobra.Command {
	imageCmd := &cobra.Command{
		Use:     "image",
		Short:   "Descrambles or scrambles tile shuffled images",
		Example: "untile image descramble --image 001.jpg --image 002.jpg --url 'https://cdn.example.com/pages/ABCDEFGH/001.jpg?expires=1700000000&key=3'",
	}

	imageCmd.AddCommand(descrambleImageCommand(), scrambleImageCommand())
	return imageCmd
}

type descrambleImageOpts struct {
	images       []string
	seed         seedOpts
	outputDir    string
	archive      string
	force        bool
	skipExisting bool
	pad          int
	workers      int
	config       commonOpts
}

func descrambleImageCommand() *cobra.Command {
	opts := descrambleImageOpts{}

	descrambleCmd := &cobra.Command{
		Use:     "descramble",
		Example: "untile image descramble --image 001.png --image 002.png --seed FGHABCDE --archive chapter.cbz",
		Short:   "Put the tiles of scrambled images back in place",
		RunE: func(cmd *cobra.Command, args []string) error {
			pageSeed, err := opts.seed.resolve()
			if err != nil {
				return err
			}

			summary, err := DescramblePages(cmd.Context(), opts.images, pageSeed, DescrambleOptions{
				OutputDir:    opts.outputDir,
				Archive:      opts.archive,
				Force:        opts.force,
				SkipExisting: opts.skipExisting,
				Pad:          opts.pad,
				Workers:      opts.workers,
				Config:       opts.config.toDescrambleConfig(),
			})
			fmt.Fprintln(cmd.OutOrStdout(), summary)
			return err
		},
	}

	descrambleCmd.Flags().StringSliceVar(&opts.images, "image", nil, "Scrambled images. Can be comma separated, or you can supply the image param several times with each image")
	opts.seed.addFlags(descrambleCmd, true)
	descrambleCmd.Flags().StringVar(&opts.outputDir, "output-dir", "descrambled", "Directory the descrambled images are written to")
	descrambleCmd.Flags().StringVar(&opts.archive, "archive", "", "Write the descrambled images into this cbz archive instead of the output directory")
	descrambleCmd.Flags().BoolVar(&opts.force, "force", false, "Descramble even when the seed indicates the images are not scrambled")
	descrambleCmd.Flags().BoolVar(&opts.skipExisting, "skip-existing", false, "Leave pages whose output file already exists untouched")
	descrambleCmd.Flags().IntVar(&opts.pad, "pad", archive.DefaultPad, "Number of digits of the page numbers inside the archive")
	descrambleCmd.Flags().IntVar(&opts.workers, "workers", runtime.NumCPU(), "Number of images processed at the same time")
	opts.config.addFlags(descrambleCmd)

	MarkFlagsRequired(descrambleCmd, "image")

	return descrambleCmd
}

type scrambleImageOpts struct {
	sourceImage string
	outputImage string
	seed        string
	config      commonOpts
}

func scrambleImageCommand() *cobra.Command {
	opts := scrambleImageOpts{}

	scrambleCmd := &cobra.Command{
		Use:     "scramble",
		Example: "untile image scramble --image page.png --seed FGHABCDE --output-file scrambled.png",
		Short:   "Shuffle the tiles of an image with a seed",
		RunE: func(cmd *cobra.Command, args []string) error {
			outputPath, err := ScrambleImage(opts.sourceImage, opts.outputImage, opts.seed, opts.config.toDescrambleConfig())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Generated %s\n", outputPath)
			return nil
		},
	}

	scrambleCmd.Flags().StringVar(&opts.sourceImage, "image", "", "Image to scramble")
	scrambleCmd.Flags().StringVar(&opts.outputImage, "output-file", "", "Name for the scrambled image that will be generated")
	scrambleCmd.Flags().StringVar(&opts.seed, "seed", "", "Seed to scramble the image with")
	opts.config.addFlags(scrambleCmd)

	MarkFlagsRequired(scrambleCmd, "image", "output-file", "seed")

	return scrambleCmd
}

func ScrambleImage(imageSourcePath, outputPath, seed string, iConfig config.DescrambleConfig) (string, error) {
	srcImage, err := untileImage.DecodeFile(imageSourcePath)
	if err != nil {
		return "", err
	}

	scrambler, err := untileImage.NewScrambler(srcImage, iConfig)
	if err != nil {
		return "", err
	}
	if err = scrambler.Scramble(seed); err != nil {
		return "", err
	}
	return scrambler.Export(outputPath)
}
