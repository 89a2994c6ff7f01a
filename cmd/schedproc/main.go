package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"schedproc/internal/config"
	"schedproc/internal/drive"
	"schedproc/internal/grids"
	"schedproc/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	must(err)

	logger := logrus.New()
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	}

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	ctx := context.Background()
	cmd := os.Args[1]
	switch cmd {
	case "folders:list":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		parent := fs.String("parent", cfg.RootFolderID, "parent folder id")
		_ = fs.Parse(os.Args[2:])
		if *parent == "" {
			must(fmt.Errorf("--parent is required"))
		}
		client, err := drive.NewClient(ctx, cfg)
		must(err)
		folders, err := client.ListFolders(ctx, *parent)
		must(err)
		for _, folder := range folders {
			fmt.Printf("%s\t%s\n", folder.ID, folder.Name)
		}
	case "export:clients":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		folder := fs.String("folder", cfg.ClientsFolderID, "client folder id")
		out := fs.String("out", filepath.Join(cfg.OutputDir, "Clients_Processed.xlsx"), "output xlsx path")
		_ = fs.Parse(os.Args[2:])
		svc, err := newService(ctx, cfg, logger)
		must(err)
		count, err := svc.ExportClients(ctx, *folder, *out)
		must(err)
		fmt.Printf("exported %d client rows to %s\n", count, *out)
	case "export:staff":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		therapists := fs.String("therapists", cfg.TherapistsFolderID, "therapist folder id")
		supervisors := fs.String("supervisors", cfg.SupervisorsFolderID, "supervisor folder id")
		out := fs.String("out", filepath.Join(cfg.OutputDir, "Staff_Processed.xlsx"), "output xlsx path")
		_ = fs.Parse(os.Args[2:])
		svc, err := newService(ctx, cfg, logger)
		must(err)
		count, err := svc.ExportStaff(ctx, *therapists, *supervisors, *out)
		must(err)
		fmt.Printf("exported %d staff rows to %s\n", count, *out)
	case "export:addresses":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		clients := fs.String("clients", cfg.ClientsFolderID, "client folder id")
		therapists := fs.String("therapists", cfg.TherapistsFolderID, "therapist folder id")
		supervisors := fs.String("supervisors", cfg.SupervisorsFolderID, "supervisor folder id")
		out := fs.String("out", filepath.Join(cfg.OutputDir, "Addresses_Processed.xlsx"), "output xlsx path")
		_ = fs.Parse(os.Args[2:])
		svc, err := newService(ctx, cfg, logger)
		must(err)
		count, err := svc.ExportAddresses(ctx, *clients, *therapists, *supervisors, *out)
		must(err)
		fmt.Printf("exported %d address rows to %s\n", count, *out)
	case "export:all":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		outDir := fs.String("out-dir", cfg.OutputDir, "output directory")
		fresh := fs.Bool("fresh", false, "clear the grid cache before exporting")
		_ = fs.Parse(os.Args[2:])
		svc, err := newService(ctx, cfg, logger)
		must(err)
		if *fresh {
			svc.ClearCache()
		}
		must(exportAll(ctx, cfg, svc, *outDir))
	default:
		usage()
		os.Exit(1)
	}
}

// exportAll runs the three record types concurrently. They share one grid
// source, so a file referenced by several exports is fetched once.
func exportAll(ctx context.Context, cfg config.Config, svc *pipeline.Service, outDir string) error {
	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		count, err := svc.ExportClients(ctx, cfg.ClientsFolderID, filepath.Join(outDir, "Clients_Processed.xlsx"))
		if err != nil {
			return fmt.Errorf("clients export: %w", err)
		}
		fmt.Printf("exported %d client rows\n", count)
		return nil
	})
	eg.Go(func() error {
		count, err := svc.ExportStaff(ctx, cfg.TherapistsFolderID, cfg.SupervisorsFolderID, filepath.Join(outDir, "Staff_Processed.xlsx"))
		if err != nil {
			return fmt.Errorf("staff export: %w", err)
		}
		fmt.Printf("exported %d staff rows\n", count)
		return nil
	})
	eg.Go(func() error {
		count, err := svc.ExportAddresses(ctx, cfg.ClientsFolderID, cfg.TherapistsFolderID, cfg.SupervisorsFolderID, filepath.Join(outDir, "Addresses_Processed.xlsx"))
		if err != nil {
			return fmt.Errorf("addresses export: %w", err)
		}
		fmt.Printf("exported %d address rows\n", count)
		return nil
	})
	return eg.Wait()
}

func newService(ctx context.Context, cfg config.Config, logger *logrus.Logger) (*pipeline.Service, error) {
	client, err := drive.NewClient(ctx, cfg)
	if err != nil {
		return nil, err
	}
	source := grids.NewSource(client, logger)
	svc := pipeline.NewService(client, source, logger, cfg.FileWorkers)
	svc.SetProgress(func(status string) { logger.Info(status) })
	return svc, nil
}

func usage() {
	fmt.Println("usage: schedproc <command>")
	fmt.Println("commands:")
	fmt.Println("  folders:list --parent=<folder-id>")
	fmt.Println("  export:clients --folder=<id> --out=./out/Clients_Processed.xlsx")
	fmt.Println("  export:staff --therapists=<id> --supervisors=<id> --out=./out/Staff_Processed.xlsx")
	fmt.Println("  export:addresses --clients=<id> --therapists=<id> --supervisors=<id> --out=./out/Addresses_Processed.xlsx")
	fmt.Println("  export:all --out-dir=./out [--fresh]")
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
