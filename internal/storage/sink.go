package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"time"

	mdhtml "github.com/gomarkdown/markdown"

	"github.com/rohmanhakim/dom-patcher/internal/changelog"
	"github.com/rohmanhakim/dom-patcher/internal/metadata"
	"github.com/rohmanhakim/dom-patcher/internal/report"
	"github.com/rohmanhakim/dom-patcher/pkg/failure"
	"github.com/rohmanhakim/dom-patcher/pkg/fileutil"
	"github.com/rohmanhakim/dom-patcher/pkg/hashutil"
	"github.com/rohmanhakim/dom-patcher/pkg/urlutil"
)

/*
Responsibilities
- Persist session results as JSON
- Write the markdown summary and its HTML preview
- Ensure deterministic filenames

Output Characteristics
- Stable directory layout: <outputDir>/<urlhash>.{json,md,html}
- urlhash is the configured hash over the canonicalized page URL
- Idempotent writes, overwrite-safe reruns
*/

type Sink interface {
	Write(
		outputDir string,
		pageURL url.URL,
		results []changelog.Result,
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
	pageURL url.URL,
	results []changelog.Result,
	hashAlgo hashutil.HashAlgo,
) (WriteResult, failure.ClassifiedError) {
	writeResult, err := write(outputDir, pageURL, results, hashAlgo)
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
				metadata.NewAttr(metadata.AttrURL, pageURL.String()),
				metadata.NewAttr(metadata.AttrWritePath, storageError.Path),
			},
		)
		return WriteResult{}, storageError
	}

	s.metadataSink.RecordArtifact(
		metadata.ArtifactResultJSON,
		writeResult.ResultPath(),
		[]metadata.Attribute{
			metadata.NewAttr(metadata.AttrWritePath, writeResult.ResultPath()),
			metadata.NewAttr(metadata.AttrURL, pageURL.String()),
			metadata.NewAttr(metadata.AttrField, writeResult.URLHash()),
		},
	)
	s.metadataSink.RecordArtifact(
		metadata.ArtifactSummaryMD,
		writeResult.SummaryPath(),
		[]metadata.Attribute{
			metadata.NewAttr(metadata.AttrWritePath, writeResult.SummaryPath()),
		},
	)
	s.metadataSink.RecordArtifact(
		metadata.ArtifactPreviewHTML,
		writeResult.PreviewPath(),
		[]metadata.Attribute{
			metadata.NewAttr(metadata.AttrWritePath, writeResult.PreviewPath()),
		},
	)

	return writeResult, nil
}

func write(
	outputDir string,
	pageURL url.URL,
	results []changelog.Result,
	hashAlgo hashutil.HashAlgo,
) (WriteResult, error) {
	canonical := urlutil.Canonicalize(pageURL)
	urlHash, err := hashutil.HashBytes([]byte(canonical.String()), hashAlgo)
	if err != nil {
		return WriteResult{}, &StorageError{
			Message:   fmt.Sprintf("%v", err),
			Retryable: false,
			Cause:     ErrCauseHashFailure,
		}
	}

	if ferr := fileutil.EnsureDir(outputDir); ferr != nil {
		return WriteResult{}, &StorageError{
			Message:   ferr.Error(),
			Retryable: false,
			Cause:     ErrCauseWriteFailure,
			Path:      outputDir,
		}
	}

	resultPath := filepath.Join(outputDir, urlHash+".json")
	summaryPath := filepath.Join(outputDir, urlHash+".md")
	previewPath := filepath.Join(outputDir, urlHash+".html")

	resultJSON, jsonErr := json.MarshalIndent(results, "", "  ")
	if jsonErr != nil {
		return WriteResult{}, &StorageError{
			Message:   fmt.Sprintf("%v", jsonErr),
			Retryable: false,
			Cause:     ErrCauseMarshalFailure,
			Path:      resultPath,
		}
	}

	if ferr := fileutil.WriteFile(resultPath, resultJSON); ferr != nil {
		return WriteResult{}, &StorageError{
			Message:   ferr.Error(),
			Retryable: false,
			Cause:     ErrCauseWriteFailure,
			Path:      resultPath,
		}
	}

	summary := report.BuildSummary(pageURL.String(), results)
	if ferr := fileutil.WriteFile(summaryPath, []byte(summary)); ferr != nil {
		return WriteResult{}, &StorageError{
			Message:   ferr.Error(),
			Retryable: false,
			Cause:     ErrCauseWriteFailure,
			Path:      summaryPath,
		}
	}

	preview := mdhtml.ToHTML([]byte(summary), nil, nil)
	if ferr := fileutil.WriteFile(previewPath, preview); ferr != nil {
		return WriteResult{}, &StorageError{
			Message:   ferr.Error(),
			Retryable: false,
			Cause:     ErrCauseWriteFailure,
			Path:      previewPath,
		}
	}

	return NewWriteResult(urlHash, resultPath, summaryPath, previewPath), nil
}
