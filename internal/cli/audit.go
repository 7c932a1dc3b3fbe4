package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/studydesk/studydesk/internal/config"
	"github.com/studydesk/studydesk/internal/database"
	"github.com/studydesk/studydesk/internal/services"
)

// AuditCommand runs a one-shot integrity audit of the derived class counters.
type AuditCommand struct {
	DatabasePath string
	Repair       bool
	Verbose      bool
}

// NewAuditCommand creates a new AuditCommand
func NewAuditCommand() *AuditCommand {
	return &AuditCommand{}
}

// ParseFlags parses command line flags
func (cmd *AuditCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("audit", flag.ExitOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the database file to audit")
	fs.BoolVar(&cmd.Repair, "repair", false, "Rewrite drifted counters to the live document counts")
	fs.BoolVar(&cmd.Verbose, "verbose", false, "Enable verbose logging")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s audit [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Verify that each class's stored document counters match the live\n")
		fmt.Fprintf(os.Stderr, "document counts, and optionally repair any drift.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  # Report counter drift without changing anything:\n")
		fmt.Fprintf(os.Stderr, "  %s audit\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  # Repair drifted counters:\n")
		fmt.Fprintf(os.Stderr, "  %s audit -repair\n", os.Args[0])
	}

	return fs.Parse(args)
}

// Run executes the audit command
func (cmd *AuditCommand) Run() error {
	db, err := database.NewDatabase(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	report, err := services.NewIntegrity(db).AuditAll(cmd.Repair)
	if err != nil {
		return fmt.Errorf("audit failed: %w", err)
	}

	fmt.Printf("Checked %d classes\n", report.ClassesChecked)

	if len(report.Drifted) == 0 {
		fmt.Println("All counters consistent")
		return nil
	}

	for _, d := range report.Drifted {
		fmt.Printf("  %s (%s): documents %d -> %d, done %d -> %d\n",
			d.Name, d.ClassID, d.StoredDocs, d.LiveDocs, d.StoredDone, d.LiveDone)
	}

	if cmd.Repair {
		fmt.Printf("Repaired %d drifted classes\n", len(report.Drifted))
	} else {
		fmt.Printf("%d classes drifted (run with -repair to fix)\n", len(report.Drifted))
	}
	return nil
}
