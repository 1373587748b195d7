// Package cli provides the command-line interface of swaggen.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/GabrielNunesIT/go-libs/logger"
	"github.com/spf13/cobra"

	"github.com/vitalvas/swagger/export"
	"github.com/vitalvas/swagger/internal/config"
	"github.com/vitalvas/swagger/manifest"
	"github.com/vitalvas/swagger/swagger"
)

var errManifestRequired = errors.New("manifest file is required")

// CLI holds the command-line interface state.
type CLI struct {
	log        logger.ILogger
	stdout     io.Writer
	rootCmd    *cobra.Command
	configPath string
	flags      config.Config
}

// New creates a CLI writing documents sent to "-" to stdout.
func New(log logger.ILogger, stdout io.Writer) *CLI {
	c := &CLI{
		log:    log,
		stdout: stdout,
	}

	c.rootCmd = &cobra.Command{
		Use:           "swaggen",
		Short:         "Generate Swagger 2.0 documents from endpoint manifests",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a document for one API version",
		RunE:  c.runGenerate,
	}

	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Generate a document and check that it converts to valid OpenAPI 3",
		RunE:  c.runValidate,
	}

	c.setupFlags(generateCmd)
	c.rootCmd.AddCommand(generateCmd, validateCmd)

	return c
}

func (c *CLI) setupFlags(generateCmd *cobra.Command) {
	pf := c.rootCmd.PersistentFlags()
	pf.StringVarP(&c.configPath, "config", "c", "", "Path to a YAML configuration file")
	pf.StringVarP(&c.flags.Manifest, "manifest", "m", "", "Path to the endpoint manifest")
	pf.StringVar(&c.flags.RootURL, "root-url", "", "Root URL of the API (scheme, host and base path)")
	pf.StringVar(&c.flags.Version, "api-version", "", "API version to document")
	pf.StringVar(&c.flags.Title, "title", "", "API title overriding the manifest")
	pf.BoolVar(&c.flags.IgnoreObsolete, "ignore-obsolete", false, "Omit obsolete endpoints")
	pf.BoolVar(&c.flags.ResolveConflicts, "resolve-conflicts", false, "Keep the first non-obsolete endpoint when several claim a path and method")
	pf.StringSliceVar(&c.flags.Schemes, "schemes", nil, "Transfer protocols overriding the root URL scheme")

	f := generateCmd.Flags()
	f.StringVarP(&c.flags.Output, "output", "o", "", "Output file, - for stdout")
	f.StringVarP(&c.flags.Format, "format", "f", "", "Output format: json, yaml")
	f.BoolVar(&c.flags.OpenAPI3, "openapi3", false, "Convert the document to OpenAPI 3.0")
}

// Execute runs the CLI.
func (c *CLI) Execute() error {
	return c.rootCmd.Execute()
}

// SetArgs overrides the command-line arguments.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

func (c *CLI) runGenerate(cmd *cobra.Command, _ []string) error {
	cfg, err := c.loadConfig(cmd)
	if err != nil {
		return err
	}

	format, err := export.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}

	doc, err := c.generate(cfg)
	if err != nil {
		return err
	}

	var out any = doc
	if cfg.OpenAPI3 {
		c.log.Infof("Converting to OpenAPI 3.0...")
		doc3, err := export.ToOpenAPI3(cmd.Context(), doc)
		if err != nil {
			return err
		}
		out = doc3
	}

	if cfg.Output == "" || cfg.Output == "-" {
		return export.Write(c.stdout, out, format)
	}

	if err := writeFile(cfg.Output, out, format); err != nil {
		return err
	}

	c.log.Infof("Successfully created: %s", cfg.Output)

	return nil
}

func writeFile(path string, doc any, format export.Format) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	return writeAndClose(file, doc, format)
}

// writeAndClose writes the document and closes w. A failed close is
// reported when the write succeeded.
func writeAndClose(w io.WriteCloser, doc any, format export.Format) (err error) {
	defer func() {
		if closeErr := w.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close output: %w", closeErr)
		}
	}()

	return export.Write(w, doc, format)
}

func (c *CLI) runValidate(cmd *cobra.Command, _ []string) error {
	cfg, err := c.loadConfig(cmd)
	if err != nil {
		return err
	}

	doc, err := c.generate(cfg)
	if err != nil {
		return err
	}

	if err := export.Validate(cmd.Context(), doc); err != nil {
		return err
	}

	c.log.Infof("Document for %s is valid: %d paths, %d definitions", cfg.Version, len(doc.Paths), len(doc.Definitions))

	return nil
}

// loadConfig merges the loaded configuration with the flags set on the
// command line.
func (c *CLI) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("manifest") {
		cfg.Manifest = c.flags.Manifest
	}
	if flags.Changed("root-url") {
		cfg.RootURL = c.flags.RootURL
	}
	if flags.Changed("api-version") {
		cfg.Version = c.flags.Version
	}
	if flags.Changed("title") {
		cfg.Title = c.flags.Title
	}
	if flags.Changed("ignore-obsolete") {
		cfg.IgnoreObsolete = c.flags.IgnoreObsolete
	}
	if flags.Changed("resolve-conflicts") {
		cfg.ResolveConflicts = c.flags.ResolveConflicts
	}
	if flags.Changed("schemes") {
		cfg.Schemes = c.flags.Schemes
	}
	if flags.Changed("output") {
		cfg.Output = c.flags.Output
	}
	if flags.Changed("format") {
		cfg.Format = c.flags.Format
	}
	if flags.Changed("openapi3") {
		cfg.OpenAPI3 = c.flags.OpenAPI3
	}

	return cfg, nil
}

func (c *CLI) generate(cfg *config.Config) (*swagger.Document, error) {
	if cfg.Manifest == "" {
		return nil, errManifestRequired
	}

	c.log.Infof("Loading manifest from: %s", cfg.Manifest)

	m, err := manifest.LoadFile(cfg.Manifest)
	if err != nil {
		return nil, err
	}

	versions := m.Versions()
	if len(versions) == 0 {
		title := cfg.Title
		if title == "" {
			title = "API"
		}
		versions = map[string]swagger.Info{cfg.Version: {Title: title, Version: cfg.Version}}
	} else if info, ok := versions[cfg.Version]; ok && cfg.Title != "" {
		info.Title = cfg.Title
		versions[cfg.Version] = info
	}

	sc := swagger.Config{
		Versions:               versions,
		IgnoreObsoleteActions:  cfg.IgnoreObsolete,
		VersionSupportResolver: m.SupportsVersion,
		Schemes:                cfg.Schemes,
		NewSchemaRegistry:      m.NewSchemaRegistry,
	}
	if cfg.ResolveConflicts {
		sc.ConflictingActionsResolver = swagger.PreferNonObsolete(swagger.FirstAction)
	}

	doc, err := swagger.NewGenerator(m, sc).Generate(cfg.RootURL, cfg.Version)
	if err != nil {
		return nil, fmt.Errorf("failed to generate document: %w", err)
	}

	c.log.Infof("Generated %s (%s): %d paths", doc.Info.Title, cfg.Version, len(doc.Paths))

	return doc, nil
}
