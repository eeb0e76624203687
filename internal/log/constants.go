package log

const (
	KeyAppName            = "app"
	KeyRequestID          = "requestId"
	KeyTraceID            = "traceId"
	KeySpanID             = "spanId"
	KeyProcess            = "process"
	KeyTag                = "tag"
	KeyRequest            = "request"
	KeyRequestBody        = "requestBody"
	KeyRequestHeader      = "requestHeader"
	KeyRequestHost        = "host"
	KeyRequestIp          = "requesterIP"
	KeyRequestMethod      = "requestMethod"
	KeyRequestURI         = "requestURI"
	KeyRequestURL         = "requestURL"
	KeyPathValues         = "pathValues"
	KeyConfig             = "config"
	KeyProductID          = "productId"
	KeyProduct            = "product"
	KeyStock              = "stock"
	KeyAmount             = "amount"
	KeyRequestedAmount    = "requestedAmount"
	KeyCart               = "cart"
	KeyCartLength         = "cartLength"
	KeyStorageKey         = "storageKey"
	KeyStorageDriver      = "storageDriver"
	KeyNotice             = "notice"
	KeyNoticeLevel        = "noticeLevel"
	KeyCatalogURL         = "catalogUrl"
	KeyResponseStatusCode = "statusCode"
	KeyDbURL              = "dbUrl"
)
