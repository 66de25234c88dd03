package models

import "time"

// Label is the binary classification outcome.
type Label string

const (
	LabelHotDog    Label = "Hot Dog"
	LabelNotHotDog Label = "Not Hot Dog"
)

// ClassificationRecord represents one classified upload.
type ClassificationRecord struct {
	ID          string    `json:"id"`
	Label       Label     `json:"label"`
	ModelReply  string    `json:"modelReply"`
	FileName    string    `json:"fileName"`
	ContentType string    `json:"contentType"`
	Size        int64     `json:"size"`
	StorageKey  string    `json:"storageKey,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// HistoryPage is one page of classification history, newest first.
type HistoryPage struct {
	Items    []ClassificationRecord `json:"items"`
	Total    int                    `json:"total"`
	Page     int                    `json:"page"`
	PageSize int                    `json:"pageSize"`
}
