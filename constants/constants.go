package constants

// Config
const VerboseEnvVar = "V"

// File system
const ConfigFileName = ".atmoctl/config.yml"

// Error messages
const ErrMsgInternal = "An internal error occurred. If the issue persists, please contact the platform team."
const ErrMsgAuthFailed = "Authentication failed"
const ErrMsgBadJSON = "Failed to parse response body as JSON"

// HTTP
//
// Atmosphere uses a non-standard authorization scheme ("TOKEN <token>"
// instead of "Bearer <token>").
const AuthScheme = "TOKEN"
const AcceptHeader = "application/json;q=0.9,*/*;q=0.8"
const RequestIDHeader = "X-Request-Id"

// API path families. v2 serves list/CRUD; instance and volume deletion and
// actions only exist under the provider/identity-scoped v1 family.
const APIV1Path = "/api/v1"
const APIV2Path = "/api/v2"
