package storage_test

import (
	"encoding/json"
	"net/url"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohmanhakim/dom-patcher/internal/changelog"
	"github.com/rohmanhakim/dom-patcher/internal/metadata"
	"github.com/rohmanhakim/dom-patcher/internal/storage"
	"github.com/rohmanhakim/dom-patcher/pkg/hashutil"
)

// mockMetadataSink records artifact events.
type mockMetadataSink struct {
	metadata.NoopSink
	artifacts []recordedArtifact
}

type recordedArtifact struct {
	kind metadata.ArtifactKind
	path string
}

func (m *mockMetadataSink) RecordArtifact(kind metadata.ArtifactKind, path string, attrs []metadata.Attribute) {
	m.artifacts = append(m.artifacts, recordedArtifact{kind: kind, path: path})
}

func sampleResults() []changelog.Result {
	return []changelog.Result{
		{
			CurrentVal: "Talk to CRO Expert",
			NewVal:     "Get Your CRO Analysis",
			ChangeLog: []changelog.Entry{
				{LocationPath: "/html/body/div/p", CurrentText: "Talk to", NewText: "Get Your"},
				{LocationPath: "/html/body/div/span", CurrentText: "CRO Expert", NewText: "CRO Analysis"},
			},
		},
		{
			CurrentVal: "missing",
			NewVal:     "x",
			ChangeLog:  []changelog.Entry{},
		},
	}
}

func mustParseURL(t *testing.T, raw string) url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return *u
}

func TestWrite_ProducesAllArtifacts(t *testing.T) {
	outputDir := t.TempDir()
	sink := &mockMetadataSink{}
	localSink := storage.NewLocalSink(sink)

	writeResult, err := localSink.Write(
		outputDir,
		mustParseURL(t, "https://example.com/pricing"),
		sampleResults(),
		hashutil.HashAlgoBLAKE3,
	)

	require.NoError(t, err)
	assert.NotEmpty(t, writeResult.URLHash())
	assert.FileExists(t, writeResult.ResultPath())
	assert.FileExists(t, writeResult.SummaryPath())
	assert.FileExists(t, writeResult.PreviewPath())

	require.Len(t, sink.artifacts, 3)
	assert.Equal(t, metadata.ArtifactResultJSON, sink.artifacts[0].kind)
	assert.Equal(t, metadata.ArtifactSummaryMD, sink.artifacts[1].kind)
	assert.Equal(t, metadata.ArtifactPreviewHTML, sink.artifacts[2].kind)
}

func TestWrite_ResultJSONRoundTrips(t *testing.T) {
	outputDir := t.TempDir()
	sink := &mockMetadataSink{}
	localSink := storage.NewLocalSink(sink)
	results := sampleResults()

	writeResult, err := localSink.Write(
		outputDir,
		mustParseURL(t, "https://example.com/pricing"),
		results,
		hashutil.HashAlgoSHA256,
	)
	require.NoError(t, err)

	raw, readErr := os.ReadFile(writeResult.ResultPath())
	require.NoError(t, readErr)

	var decoded []changelog.Result
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, results[0].ChangeLog, decoded[0].ChangeLog)
	assert.Equal(t, "missing", decoded[1].CurrentVal)
}

func TestWrite_DeterministicFilenames(t *testing.T) {
	outputDir := t.TempDir()
	sink := &mockMetadataSink{}
	localSink := storage.NewLocalSink(sink)

	// Equivalent URL spellings canonicalize to the same hash.
	first, err := localSink.Write(outputDir, mustParseURL(t, "https://Example.com/docs/"), sampleResults(), hashutil.HashAlgoBLAKE3)
	require.NoError(t, err)
	second, err := localSink.Write(outputDir, mustParseURL(t, "https://example.com/docs#section"), sampleResults(), hashutil.HashAlgoBLAKE3)
	require.NoError(t, err)

	assert.Equal(t, first.URLHash(), second.URLHash())
	assert.Equal(t, first.ResultPath(), second.ResultPath())
}

func TestWrite_SummaryMentionsOutcomes(t *testing.T) {
	outputDir := t.TempDir()
	sink := &mockMetadataSink{}
	localSink := storage.NewLocalSink(sink)

	writeResult, err := localSink.Write(
		outputDir,
		mustParseURL(t, "https://example.com"),
		sampleResults(),
		hashutil.HashAlgoBLAKE3,
	)
	require.NoError(t, err)

	summary, readErr := os.ReadFile(writeResult.SummaryPath())
	require.NoError(t, readErr)
	assert.Contains(t, string(summary), "Talk to CRO Expert")
	assert.Contains(t, string(summary), "no match")

	preview, readErr := os.ReadFile(writeResult.PreviewPath())
	require.NoError(t, readErr)
	assert.Contains(t, string(preview), "<h1")
}

func TestWrite_UnsupportedHashAlgoFails(t *testing.T) {
	outputDir := t.TempDir()
	sink := &mockMetadataSink{}
	localSink := storage.NewLocalSink(sink)

	_, err := localSink.Write(
		outputDir,
		mustParseURL(t, "https://example.com"),
		sampleResults(),
		hashutil.HashAlgo("md5"),
	)

	require.Error(t, err)
}
