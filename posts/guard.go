// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package posts

import "github.com/danielhkuo/rankfeed/models"

// Authorize allows a mutation of post only by its creator.
func Authorize(actorID string, post models.Post) error {
	if actorID == "" || actorID != post.CreatorID {
		return ErrForbidden
	}
	return nil
}
