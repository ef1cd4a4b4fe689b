package storage

import (
	"errors"
	"time"

	"github.com/rohmanhakim/flowmap/internal/config"
	"github.com/rohmanhakim/flowmap/internal/metadata"
	"github.com/rohmanhakim/flowmap/pkg/failure"
	"github.com/rohmanhakim/flowmap/pkg/fileutil"
	"github.com/rohmanhakim/flowmap/pkg/hashutil"
	"github.com/rohmanhakim/flowmap/pkg/types"
)

/*
Responsibilities
- Persist flow map reports (json, csv, markdown)
- Ensure deterministic filenames

Output Characteristics
- Stable directory layout: <outputDir>/flowmap-<seed hash>.<ext>
- Idempotent writes
- Overwrite-safe reruns: mapping the same seed again replaces the report
*/

const (
	filePrefix  = "flowmap-"
	seedHashLen = 12
)

type Sink interface {
	Write(
		outputDir string,
		format string,
		result types.MapResult,
		hashAlgo hashutil.HashAlgo,
	) (WriteResult, failure.ClassifiedError)
}

type LocalSink struct {
	metadataSink metadata.MetadataSink
}

func NewLocalSink(
	metadataSink metadata.MetadataSink,
) LocalSink {
	return LocalSink{
		metadataSink: metadataSink,
	}
}

func (s *LocalSink) Write(
	outputDir string,
	format string,
	result types.MapResult,
	hashAlgo hashutil.HashAlgo,
) (WriteResult, failure.ClassifiedError) {
	writeResult, err := write(outputDir, format, result, hashAlgo)
	if err != nil {
		var storageError *StorageError
		errors.As(err, &storageError)
		s.metadataSink.RecordError(
			time.Now(),
			"storage",
			"LocalSink.Write",
			mapStorageErrorToMetadataCause(storageError),
			err.Error(),
			[]metadata.Attribute{
				metadata.NewAttr(metadata.AttrSeedURL, result.SeedURL),
				metadata.NewAttr(metadata.AttrFormat, format),
				metadata.NewAttr(metadata.AttrWritePath, storageError.Path),
			},
		)
		return WriteResult{}, storageError
	}
	s.metadataSink.RecordArtifact(
		metadata.ArtifactReport,
		writeResult.Path(),
		[]metadata.Attribute{
			metadata.NewAttr(metadata.AttrWritePath, writeResult.Path()),
			metadata.NewAttr(metadata.AttrSeedURL, result.SeedURL),
			metadata.NewAttr(metadata.AttrCrawlID, result.CrawlID),
			metadata.NewAttr(metadata.AttrFormat, format),
		},
	)
	return writeResult, nil
}

// FileName returns the report file name for seedURL in format.
func FileName(seedURL string, format string, hashAlgo hashutil.HashAlgo) (string, error) {
	ext, ok := extensionOf(format)
	if !ok {
		return "", &StorageError{
			Message:   format,
			Retryable: false,
			Cause:     ErrCauseUnsupportedFormat,
		}
	}
	seedHash, err := hashutil.Fingerprint(seedURL, hashAlgo, seedHashLen)
	if err != nil {
		return "", &StorageError{
			Message:   err.Error(),
			Retryable: false,
			Cause:     ErrCauseHashComputationFailed,
		}
	}
	return filePrefix + seedHash + "." + ext, nil
}

func extensionOf(format string) (string, bool) {
	switch format {
	case config.ReportFormatJSON:
		return "json", true
	case config.ReportFormatCSV:
		return "csv", true
	case config.ReportFormatMarkdown:
		return "md", true
	default:
		return "", false
	}
}

func encode(format string, result types.MapResult) ([]byte, error) {
	switch format {
	case config.ReportFormatJSON:
		return encodeJSON(result)
	case config.ReportFormatCSV:
		return encodeCSV(result)
	default:
		return encodeMarkdown(result)
	}
}

func write(
	outputDir string,
	format string,
	result types.MapResult,
	hashAlgo hashutil.HashAlgo,
) (WriteResult, failure.ClassifiedError) {
	filename, err := FileName(result.SeedURL, format, hashAlgo)
	if err != nil {
		var storageError *StorageError
		errors.As(err, &storageError)
		return WriteResult{}, storageError
	}

	content, err := encode(format, result)
	if err != nil {
		return WriteResult{}, &StorageError{
			Message:   err.Error(),
			Retryable: false,
			Cause:     ErrCauseEncodeFailure,
		}
	}

	fullPath, writeErr := fileutil.WriteFile(outputDir, filename, content)
	if writeErr != nil {
		cause := ErrCauseWriteFailure
		retryable := false
		var fileErr *fileutil.FileError
		if errors.As(writeErr, &fileErr) {
			switch fileErr.Cause {
			case fileutil.ErrCausePathError:
				cause = ErrCausePathError
			case fileutil.ErrCauseDiskFull:
				cause = ErrCauseDiskFull
				retryable = true
			}
		}
		return WriteResult{}, &StorageError{
			Message:   writeErr.Error(),
			Retryable: retryable,
			Cause:     cause,
			Path:      outputDir,
		}
	}

	seedHash := filename[len(filePrefix) : len(filePrefix)+seedHashLen]
	return NewWriteResult(seedHash, fullPath, format, len(content)), nil
}
