package util

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"
)

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

const (
	// TokenCookieName OAuth 回调后写入的登录态
	TokenCookieName = "gamify_token"
	// OAuthStateCookieName 发起 Whop 登录的浏览器持有的 state
	OAuthStateCookieName = "gamify_oauth_state"
	// WhopSignatureHeader Whop webhook 签名请求头
	WhopSignatureHeader = "X-Whop-Signature"
)
