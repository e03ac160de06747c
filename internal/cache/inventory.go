package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	CommunityKeyPrefix   = "community:%d"
	CommunityListKey     = "communities:list"
	RosterKeyPrefix      = "community:%d:roster"
	PostContentKeyPrefix = "post:%d:content"
)

const (
	CommunityTTL   = 10 * time.Minute
	RosterTTL      = 2 * time.Minute
	PostContentTTL = 5 * time.Minute
)

func CommunityKey(communityID uint) string {
	return fmt.Sprintf(CommunityKeyPrefix, communityID)
}

func RosterKey(communityID uint) string {
	return fmt.Sprintf(RosterKeyPrefix, communityID)
}

func PostContentKey(postID uint) string {
	return fmt.Sprintf(PostContentKeyPrefix, postID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

// InvalidateCommunity drops the community detail, the community list, and the
// roster view; roster and member counts change together with the community.
func InvalidateCommunity(ctx context.Context, communityID uint) {
	Invalidate(ctx, CommunityKey(communityID))
	Invalidate(ctx, RosterKey(communityID))
	Invalidate(ctx, CommunityListKey)
}

func InvalidateRoster(ctx context.Context, communityID uint) {
	Invalidate(ctx, RosterKey(communityID))
	Invalidate(ctx, CommunityListKey)
}

func InvalidatePostContent(ctx context.Context, postID uint) {
	Invalidate(ctx, PostContentKey(postID))
}
