package storage

// Persistence

type WriteResult struct {
	urlHash     string // identity (filename without extension)
	resultPath  string
	summaryPath string
	previewPath string
}

func NewWriteResult(
	urlHash string,
	resultPath string,
	summaryPath string,
	previewPath string,
) WriteResult {
	return WriteResult{
		urlHash:     urlHash,
		resultPath:  resultPath,
		summaryPath: summaryPath,
		previewPath: previewPath,
	}
}

func (w *WriteResult) URLHash() string {
	return w.urlHash
}

func (w *WriteResult) ResultPath() string {
	return w.resultPath
}

func (w *WriteResult) SummaryPath() string {
	return w.summaryPath
}

func (w *WriteResult) PreviewPath() string {
	return w.previewPath
}
