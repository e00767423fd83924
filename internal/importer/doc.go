package importer

// Package importer fetches remote clips into the local media library.
// Single URLs are downloaded with yt-dlp (via github.com/lrstanley/go-ytdlp);
// playlists are listed with github.com/ytget/ytdlp/v2 and imported entry by
// entry.
