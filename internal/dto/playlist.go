package dto

import (
	"time"

	"vidtube/internal/model"
)

type PlaylistResponse struct {
	ID          uint64          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"createdAt"`
	OwnerID     uint64          `json:"ownerId"`
	Videos      []VideoResponse `json:"videos"`
}

// ToPlaylistResponse 把条目展开成按Position排序的视频列表
func ToPlaylistResponse(playlist *model.Playlist) PlaylistResponse {
	resp := PlaylistResponse{
		ID:          playlist.ID,
		Name:        playlist.Name,
		Description: playlist.Description,
		CreatedAt:   playlist.CreatedAt,
		OwnerID:     playlist.OwnerID,
		Videos:      make([]VideoResponse, 0, len(playlist.Videos)),
	}
	for i := range playlist.Videos {
		entry := &playlist.Videos[i]
		if entry.Video.ID != 0 {
			resp.Videos = append(resp.Videos, ToVideoResponse(&entry.Video))
		}
	}
	return resp
}

func ToPlaylistResponses(playlists []model.Playlist) []PlaylistResponse {
	response := make([]PlaylistResponse, 0, len(playlists))
	for i := range playlists {
		response = append(response, ToPlaylistResponse(&playlists[i]))
	}
	return response
}
