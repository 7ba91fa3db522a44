package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"github.com/zhouzirui/ebooks/backend/internal/embedded"
	"github.com/zhouzirui/ebooks/backend/internal/model/catalog"
	catalogService "github.com/zhouzirui/ebooks/backend/internal/service/catalog"
)

type rootOptions struct {
	catalogPath string
	locale      string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "catalogctl",
		Short: "Inspect and query an ebooks catalog document",
		Long: `catalogctl loads a catalog document the same way the API server does and
runs lookups against it offline.

Without --catalog it uses CATALOG_PATH, and falls back to the embedded catalog.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.catalogPath, "catalog", os.Getenv("CATALOG_PATH"), "catalog document (.json, .yaml, .yml)")
	rootCmd.PersistentFlags().StringVar(&opts.locale, "locale", "es-ES", "collation locale for the surname ordering")

	rootCmd.AddCommand(
		newValidateCmd(opts),
		newAuthorsCmd(opts),
		newWorksCmd(opts),
	)
	return rootCmd
}

func newValidateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Load the catalog and report its contents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			authors, err := opts.loadAuthors()
			if err != nil {
				return err
			}

			report := validateCatalog(authors)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "authors: %d\n", report.Authors)
			fmt.Fprintf(out, "works: %d\n", report.Works)
			for _, issue := range report.Issues {
				fmt.Fprintf(out, "warning: %s\n", issue)
			}
			return nil
		},
	}
}

func newAuthorsCmd(opts *rootOptions) *cobra.Command {
	var name, surname, prefix string

	cmd := &cobra.Command{
		Use:   "authors",
		Short: "List authors, optionally filtered by name and surname",
		Long: `authors runs one of the catalog lookups:

  --surname S             surname contains S
  --name N --surname S    name and surname are exactly N and S
  --name N --prefix P     name is exactly N and the surname starts with P

All comparisons ignore case.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := opts.service()
			if err != nil {
				return err
			}

			var authors []catalog.Author
			switch {
			case cmd.Flags().Changed("prefix"):
				if name == "" {
					return fmt.Errorf("--prefix requires --name")
				}
				authors, err = svc.ByNameAndSurnamePrefix(name, prefix, true)
				if err != nil {
					return err
				}
			case name != "" && surname != "":
				authors = svc.ByFullName(name, surname)
			case name != "":
				authors, err = svc.ByNameAndSurnamePrefix(name, "", false)
				if err != nil {
					return fmt.Errorf("--name needs --surname or --prefix: %w", err)
				}
			case surname != "":
				authors = svc.BySurname(surname)
			default:
				authors = svc.All()
			}

			return writeJSON(cmd.OutOrStdout(), authors)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "exact author name")
	cmd.Flags().StringVar(&surname, "surname", "", "surname fragment, or exact surname together with --name")
	cmd.Flags().StringVar(&prefix, "prefix", "", "surname prefix, used together with --name")
	return cmd
}

func newWorksCmd(opts *rootOptions) *cobra.Command {
	var year string

	cmd := &cobra.Command{
		Use:   "works",
		Short: "List the works edited in a given year",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(year) == "" {
				return fmt.Errorf("--year is required")
			}

			svc, err := opts.service()
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), svc.WorksByYear(year))
		},
	}

	cmd.Flags().StringVar(&year, "year", "", "edition year")
	return cmd
}

func (o *rootOptions) loadAuthors() ([]catalog.Author, error) {
	if o.catalogPath == "" {
		return catalog.LoadFS(embedded.FS, embedded.CatalogFile)
	}
	return catalog.LoadFile(o.catalogPath)
}

func (o *rootOptions) service() (*catalogService.Service, error) {
	locale, err := language.Parse(o.locale)
	if err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", o.locale, err)
	}

	authors, err := o.loadAuthors()
	if err != nil {
		return nil, err
	}
	store := catalog.NewMemoryStore(authors, catalog.WithLocale(locale))
	return catalogService.NewService(store), nil
}

type catalogReport struct {
	Authors int
	Works   int
	Issues  []string
}

// validateCatalog reports data problems that do not prevent loading but
// make some lookups return surprising results.
func validateCatalog(authors []catalog.Author) catalogReport {
	report := catalogReport{Authors: len(authors)}
	seen := make(map[string]int, len(authors))

	for i, author := range authors {
		key := strings.ToLower(author.Name) + "\x00" + strings.ToLower(author.Surname)
		if first, ok := seen[key]; ok {
			report.Issues = append(report.Issues, fmt.Sprintf("author #%d %s %s duplicates author #%d", i, author.Name, author.Surname, first))
		} else {
			seen[key] = i
		}

		if len(author.Works) == 0 {
			report.Issues = append(report.Issues, fmt.Sprintf("author #%d %s %s has no works", i, author.Name, author.Surname))
		}

		for j, work := range author.Works {
			report.Works++
			label := fmt.Sprintf("work #%d", j)
			if title, ok := work.Field("titulo"); ok {
				label += " " + string(title)
			}
			if work.Edition.IsZero() {
				report.Issues = append(report.Issues, fmt.Sprintf("author #%d %s %s: %s has no edition year", i, author.Name, author.Surname, label))
				continue
			}
			if _, ok := work.Edition.Year(); !ok {
				report.Issues = append(report.Issues, fmt.Sprintf("author #%d %s %s: %s edition year %q is not numeric", i, author.Name, author.Surname, label, work.Edition.String()))
			}
		}
	}
	return report
}

func writeJSON(w io.Writer, payload any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}
