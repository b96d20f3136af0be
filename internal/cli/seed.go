package cli

import (
	"errors"
	"fmt"
	"untile/pkg/seed"

	"github.com/spf13/cobra"
)

var (
	errSeedSource = errors.New("exactly one of --seed, --url or --checksum with --key must be supplied")
)

// seedOpts holds the ways a seed can be given on the command line
type seedOpts struct {
	seed        string
	sourceURL   string
	checksum    string
	rotationKey string
}

func (o *seedOpts) addFlags(cmd *cobra.Command, withSeed bool) {
	if withSeed {
		cmd.Flags().StringVar(&o.seed, "seed", "", "Seed the image was scrambled with")
	}
	cmd.Flags().StringVar(&o.sourceURL, "url", "", "Url the image was served from, the seed is derived from it")
	cmd.Flags().StringVar(&o.checksum, "checksum", "", "Checksum of the image, requires --key")
	cmd.Flags().StringVar(&o.rotationKey, "key", "", "Rotation key of the image, requires --checksum")
	cmd.MarkFlagsRequiredTogether("checksum", "key")
}

func (o seedOpts) resolve() (string, error) {
	sources := 0
	for _, set := range []bool{o.seed != "", o.sourceURL != "", o.checksum != "" || o.rotationKey != ""} {
		if set {
			sources++
		}
	}
	if sources != 1 {
		return "", errSeedSource
	}

	switch {
	case o.seed != "":
		return o.seed, nil
	case o.sourceURL != "":
		return seed.ForURL(o.sourceURL)
	default:
		return seed.Derive(o.checksum, o.rotationKey)
	}
}

func SeedCommand() *cobra.Command {
	opts := seedOpts{}

	seedCmd := &cobra.Command{
		Use:     "seed",
		Short:   "Print the seed derived from an image url or from its checksum and key",
		Example: "untile seed --url 'https://cdn.example.com/pages/ABCDEFGH/001.jpg?expires=1700000000&key=3'",
		RunE: func(cmd *cobra.Command, args []string) error {
			derivedSeed, err := opts.resolve()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), derivedSeed)
			if !seed.IsScrambled(derivedSeed) {
				fmt.Fprintln(cmd.ErrOrStderr(), "Images served with this seed are not scrambled")
			}
			return nil
		},
	}

	opts.addFlags(seedCmd, false)
	return seedCmd
}
