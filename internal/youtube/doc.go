// Package youtube is a small YouTube Data API v3 client covering the two
// calls the curation run needs: paged long-form video search and batch video
// lookup (title, ISO 8601 duration, thumbnails, statistics).
package youtube
