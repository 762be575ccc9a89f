package model

import "time"

const (
	// DefaultVideoCategoryID is the category sent with every insert and update ("People & Blogs").
	DefaultVideoCategoryID = "22"
	// DefaultPrivacyStatus is the visibility of newly uploaded videos.
	DefaultPrivacyStatus = "public"
)

// VideoMetadata is the metadata document sent to the video platform on
// insert and update. ID is empty on insert.
type VideoMetadata struct {
	ID            string
	Title         string
	Description   string
	Tags          []string
	CategoryID    string
	PrivacyStatus string // Empty on update; only snippet fields are replaced.
}

// Video is the fetched state of an uploaded video.
type Video struct {
	ID            string
	Title         string
	Description   string
	Tags          []string
	CategoryID    string
	ChannelTitle  string
	PublishedAt   time.Time
	ViewCount     uint64
	LikeCount     uint64
	CommentCount  uint64
	PrivacyStatus string
	Document      []byte // Full JSON document as returned by the platform.
}
