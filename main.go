package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/rm-hull/image-channel-filters/cmd"
	"github.com/spf13/cobra"
)

func main() {
	var inFile string
	var outDir string
	var format string
	var animate bool
	var port int
	var debug bool

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	rootCmd := &cobra.Command{
		Use:  "image-channel-filters",
		Long: `Colour channel and convolution filter views of an image`,
	}

	processCmd := &cobra.Command{
		Use:   "process --in <file> [--out <dir>] [--format png|jpeg] [--animate]",
		Short: "Write the channel and filter outputs of an image to a directory",
		Run: func(_ *cobra.Command, _ []string) {
			if err := cmd.Process(inFile, outDir, format, animate); err != nil {
				log.Fatal(err)
			}
		},
	}

	processCmd.Flags().StringVar(&inFile, "in", "", "Encoded image to process (JPEG, PNG, GIF, BMP, TIFF or WebP)")
	processCmd.Flags().StringVar(&outDir, "out", "./out", "Directory to write outputs to")
	processCmd.Flags().StringVar(&format, "format", "png", "Output image format (png or jpeg)")
	processCmd.Flags().BoolVar(&animate, "animate", false, "Also write an animated contact sheet of all outputs")
	_ = processCmd.MarkFlagRequired("in")

	apiServerCmd := &cobra.Command{
		Use:   "api-server [--port <port>] [--debug]",
		Short: "Start HTTP API server",
		Run: func(_ *cobra.Command, _ []string) {
			cmd.ApiServer(port, debug)
		},
	}

	apiServerCmd.Flags().IntVar(&port, "port", 8080, "Port to run HTTP server on")
	apiServerCmd.Flags().BoolVar(&debug, "debug", false, "Enable debugging (pprof) - WARNING: do not enable in production")

	rootCmd.AddCommand(processCmd, apiServerCmd)
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
