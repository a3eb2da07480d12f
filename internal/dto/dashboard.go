package dto

// ChannelStatsResponse 频道总览，每次请求都从存储重新统计
type ChannelStatsResponse struct {
	ChannelID        uint64 `json:"channelId"`
	Username         string `json:"username"`
	FullName         string `json:"fullName"`
	Avatar           string `json:"avatar"`
	TotalSubscribers int64  `json:"totalSubscribers"`
	TotalVideos      int64  `json:"totalVideos"`
	TotalViews       int64  `json:"totalViews"`
	TotalLikes       int64  `json:"totalLikes"`
}
