package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/chimpctl/chimpctl/internal/app"
	"github.com/chimpctl/chimpctl/internal/config"
	"github.com/chimpctl/chimpctl/internal/http"
	"github.com/chimpctl/chimpctl/internal/services/mailchimp"
	"github.com/chimpctl/chimpctl/internal/utils"
	"github.com/spf13/cobra"
)

const version = "0.2.4"

var (
	configPath string

	filesCount      int
	filesOffset     int
	campaignsCount  int
	campaignsOffset int
)

func main() {
	// Get default config path
	defaultConfigPath, err := config.DefaultConfigPath()
	if err != nil {
		defaultConfigPath = "./config.toml"
	}

	// Root command
	rootCmd := &cobra.Command{
		Use:   "chimpctl",
		Short: "Mailchimp file manager and campaign CLI",
		Long:  "Command-line client for the Mailchimp Marketing API. Uploads files to the file manager, lists recent files and campaigns, and can listen for webhook callbacks.",
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", defaultConfigPath, "Path to config file")

	// Upload command
	uploadCmd := &cobra.Command{
		Use:   "upload [file]",
		Short: "Upload a file to the Mailchimp file manager",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runUpload,
	}

	// Files command
	filesCmd := &cobra.Command{
		Use:   "files",
		Short: "List the most recently added files in the file manager",
		RunE:  runFiles,
	}
	filesCmd.Flags().IntVar(&filesCount, "count", mailchimp.DefaultFileCount, "Number of files to list")
	filesCmd.Flags().IntVar(&filesOffset, "offset", 0, "Number of files to skip")

	// Campaigns command
	campaignsCmd := &cobra.Command{
		Use:   "campaigns",
		Short: "List the most recently created campaigns",
		RunE:  runCampaigns,
	}
	campaignsCmd.Flags().IntVar(&campaignsCount, "count", mailchimp.DefaultCampaignCount, "Number of campaigns to list")
	campaignsCmd.Flags().IntVar(&campaignsOffset, "offset", 0, "Number of campaigns to skip")

	// Serve command
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the webhook listener",
		RunE:  runServe,
	}

	// Generate-config command
	generateConfigCmd := &cobra.Command{
		Use:   "generate-config",
		Short: "Generate config",
		RunE: func(cmd *cobra.Command, args []string) error {
			return utils.GenerateConfig(configPath, os.Stdin)
		},
	}

	// Version command
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("chimpctl version %s\n", version)
		},
	}

	rootCmd.AddCommand(uploadCmd)
	rootCmd.AddCommand(filesCmd)
	rootCmd.AddCommand(campaignsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(generateConfigCmd)
	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// buildContainer loads and validates the configuration, then wires the
// shared dependencies. The startup ping is skipped for one-shot commands so
// each of them issues exactly one API request.
func buildContainer(validateKey bool) (*app.Container, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	container, err := app.NewContainer(cfg, app.WithAPIKeyValidation(validateKey))
	if err != nil {
		return nil, fmt.Errorf("failed to build container: %w", err)
	}

	return container, nil
}

func printResponse(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to render response: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func runUpload(cmd *cobra.Command, args []string) error {
	container, err := buildContainer(false)
	if err != nil {
		return err
	}

	var filePath string
	if len(args) == 1 {
		filePath = args[0]
	} else {
		filePath, err = utils.PromptFilePath(os.Stdin)
		if err != nil {
			return err
		}
	}

	resp, err := container.MailchimpClient.Upload(filePath)
	if err != nil {
		return err
	}

	return printResponse(resp)
}

func runFiles(cmd *cobra.Command, args []string) error {
	container, err := buildContainer(false)
	if err != nil {
		return err
	}

	resp, err := container.MailchimpClient.ListFiles(filesCount, filesOffset)
	if err != nil {
		return err
	}

	return printResponse(resp)
}

func runCampaigns(cmd *cobra.Command, args []string) error {
	container, err := buildContainer(false)
	if err != nil {
		return err
	}

	resp, err := container.MailchimpClient.ListCampaigns(campaignsCount, campaignsOffset)
	if err != nil {
		return err
	}

	return printResponse(resp)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	container, err := buildContainer(true)
	if err != nil {
		return err
	}

	container.Logger.Infof("Starting chimpctl, version %s", version)

	server := http.NewServer(container)
	return server.StartWithContext(ctx)
}
