package handlers

// HandlerBundle groups the endpoint handlers so route registration can take
// a single value instead of one argument per domain.
type HandlerBundle struct {
	Catalog      *CatalogHandler
	Review       *ReviewHandler
	Bookmark     *BookmarkHandler
	Moderation   *ModerationHandler
	Notification *NotificationHandler
}
