package pipeline

import (
	"context"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"schedproc/internal"
)

// ErrNoFolderSelected is returned before any network access when an
// operation has zero relevant folders configured.
var ErrNoFolderSelected = errors.New("no folder selected")

// Lister enumerates the files of one Drive folder.
type Lister interface {
	ListFiles(ctx context.Context, folderID string) ([]internal.DriveFile, error)
}

// GridSource provides cached, decoded grids for Drive files.
type GridSource interface {
	FetchGrid(ctx context.Context, file internal.DriveFile) (internal.Grid, error)
	ClearCache()
}

// Progress receives a human-readable status line as each file begins
// processing. Purely observational.
type Progress func(status string)

// Service runs the record builders across folders. Per-file failures are
// logged and skipped; only folder listing failures abort a record type.
type Service struct {
	lister   Lister
	source   GridSource
	log      *logrus.Logger
	workers  int
	progress Progress
}

func NewService(lister Lister, source GridSource, log *logrus.Logger, workers int) *Service {
	if workers <= 0 {
		workers = 1
	}
	return &Service{lister: lister, source: source, log: log, workers: workers}
}

func (s *Service) SetProgress(fn Progress) { s.progress = fn }

func (s *Service) ClearCache() { s.source.ClearCache() }

func (s *Service) report(status string) {
	if s.progress != nil {
		s.progress(status)
	}
}

// forEachFile walks one folder, dispatching files across the worker pool.
// build errors are warnings, not failures; the walk always completes.
func (s *Service) forEachFile(ctx context.Context, folderID string, build func(ctx context.Context, file internal.DriveFile) error) error {
	files, err := s.lister.ListFiles(ctx, folderID)
	if err != nil {
		return errors.Wrapf(err, "list folder %s", folderID)
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(s.workers)
	for _, file := range files {
		file := file
		eg.Go(func() error {
			s.report("Processing file: " + file.Name + "...")
			if err := build(ctx, file); err != nil {
				s.log.WithError(err).Warnf("skipping file %s", file.Name)
			}
			return nil
		})
	}
	return eg.Wait()
}

// ClientRecords builds one record per readable file in the client folder,
// in folder listing order.
func (s *Service) ClientRecords(ctx context.Context, folderID string) ([]internal.ClientRecord, error) {
	if strings.TrimSpace(folderID) == "" {
		return nil, ErrNoFolderSelected
	}

	files, err := s.lister.ListFiles(ctx, folderID)
	if err != nil {
		return nil, errors.Wrap(err, "list client folder")
	}

	built := make([]*internal.ClientRecord, len(files))
	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(s.workers)
	for i, file := range files {
		i, file := i, file
		eg.Go(func() error {
			s.report("Processing file: " + file.Name + "...")
			grid, err := s.source.FetchGrid(gctx, file)
			if err != nil {
				s.log.WithError(err).Warnf("skipping file %s", file.Name)
				return nil
			}
			rec, err := BuildClientRecord(grid, file.Name)
			if err != nil {
				s.log.WithError(err).Warnf("skipping file %s", file.Name)
				return nil
			}
			built[i] = &rec
			return nil
		})
	}
	_ = eg.Wait()

	out := make([]internal.ClientRecord, 0, len(built))
	for _, rec := range built {
		if rec != nil {
			out = append(out, *rec)
		}
	}
	return out, nil
}

// StaffRecords builds records for the therapist and supervisor folders.
// Either folder may be empty; at least one must be selected. Therapists
// come first in the output.
func (s *Service) StaffRecords(ctx context.Context, therapistsID, supervisorsID string) ([]internal.StaffRecord, error) {
	if strings.TrimSpace(therapistsID) == "" && strings.TrimSpace(supervisorsID) == "" {
		return nil, ErrNoFolderSelected
	}

	var out []internal.StaffRecord
	for _, folder := range []struct {
		id           string
		isSupervisor bool
	}{
		{therapistsID, false},
		{supervisorsID, true},
	} {
		if strings.TrimSpace(folder.id) == "" {
			continue
		}
		records, err := s.staffFolder(ctx, folder.id, folder.isSupervisor)
		if err != nil {
			return nil, err
		}
		out = append(out, records...)
	}
	return out, nil
}

func (s *Service) staffFolder(ctx context.Context, folderID string, isSupervisor bool) ([]internal.StaffRecord, error) {
	files, err := s.lister.ListFiles(ctx, folderID)
	if err != nil {
		return nil, errors.Wrap(err, "list staff folder")
	}

	built := make([]*internal.StaffRecord, len(files))
	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(s.workers)
	for i, file := range files {
		i, file := i, file
		eg.Go(func() error {
			s.report("Processing file: " + file.Name + "...")
			grid, err := s.source.FetchGrid(gctx, file)
			if err != nil {
				s.log.WithError(err).Warnf("skipping file %s", file.Name)
				return nil
			}
			rec, err := BuildStaffRecord(grid, file.Name, isSupervisor)
			if err != nil {
				s.log.WithError(err).Warnf("skipping file %s", file.Name)
				return nil
			}
			built[i] = &rec
			return nil
		})
	}
	_ = eg.Wait()

	out := make([]internal.StaffRecord, 0, len(built))
	for _, rec := range built {
		if rec != nil {
			out = append(out, *rec)
		}
	}
	return out, nil
}

// AddressRecords collects the combined directory across the three folders,
// scanned concurrently, then applies the Client-before-Staff sort.
func (s *Service) AddressRecords(ctx context.Context, clientsID, therapistsID, supervisorsID string) ([]internal.AddressRecord, error) {
	folders := []struct {
		id  string
		typ string
	}{
		{clientsID, internal.AddressTypeClient},
		{therapistsID, internal.AddressTypeStaff},
		{supervisorsID, internal.AddressTypeStaff},
	}

	selected := false
	for _, f := range folders {
		if strings.TrimSpace(f.id) != "" {
			selected = true
		}
	}
	if !selected {
		return nil, ErrNoFolderSelected
	}

	collected := make([][]internal.AddressRecord, len(folders))
	eg, gctx := errgroup.WithContext(ctx)
	for i, folder := range folders {
		if strings.TrimSpace(folder.id) == "" {
			continue
		}
		i, folder := i, folder
		eg.Go(func() error {
			records, err := s.addressFolder(gctx, folder.id, folder.typ)
			if err != nil {
				return err
			}
			collected[i] = records
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	var out []internal.AddressRecord
	for _, records := range collected {
		out = append(out, records...)
	}
	SortAddresses(out)
	return out, nil
}

func (s *Service) addressFolder(ctx context.Context, folderID, recordType string) ([]internal.AddressRecord, error) {
	var mu sync.Mutex
	var records []internal.AddressRecord

	err := s.forEachFile(ctx, folderID, func(ctx context.Context, file internal.DriveFile) error {
		grid, err := s.source.FetchGrid(ctx, file)
		if err != nil {
			return err
		}
		found := CollectAddresses(grid, file.Name, recordType)
		mu.Lock()
		records = append(records, found...)
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}
