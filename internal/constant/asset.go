package constant

const (
	MAX_FILE_SIZE            = 5 * 1024 * 1024
	IMAGE_FIELD_NAME         = "image"
	DEFAULT_UPLOAD_DIR       = "uploads"
	DEFAULT_UPLOAD_PREFIX    = "/uploads"
	ASSET_CACHE_CONTROL      = "public, max-age=31536000, immutable"
	USER_LIST_CACHE_KEY      = "users:list"
	USER_LIST_GENERATION_KEY = "users:list:generation"
	MAX_USER_NAME_LENGTH     = 100
	MIN_USER_AGE             = 1
	MAX_USER_AGE             = 120
	USER_DELETED_MESSAGE     = "User deleted successfully"
	HEALTH_STATUS_OK         = "OK"
	HEALTH_RUNNING_MESSAGE   = "Server is running"
)
