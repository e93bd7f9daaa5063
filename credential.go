package tokencache

import (
	"fmt"
	"unicode/utf8"

	"github.com/valyala/fastjson"
)

// Field names of the upstream credential record:
//
//	{"claudeAiOauth": {"accessToken": "...", "refreshToken": "...", "expiresAt": ...}}
const (
	oauthField       = "claudeAiOauth"
	accessTokenField = "accessToken"
)

// parseAccessToken extracts claudeAiOauth.accessToken from an upstream
// credential record. Other fields are neither read nor validated.
func parseAccessToken(raw []byte) (string, error) {
	if !utf8.Valid(raw) {
		return "", ErrUnexpectedData
	}

	var p fastjson.Parser
	record, err := p.ParseBytes(raw)
	if err != nil {
		return "", newError(KindJSONParsing, err)
	}
	if record.Type() != fastjson.TypeObject {
		return "", newError(KindJSONParsing, fmt.Errorf("credential record is a JSON %s, not an object", record.Type()))
	}

	oauth := record.Get(oauthField)
	if oauth == nil || oauth.Type() != fastjson.TypeObject {
		return "", ErrTokenNotFound
	}
	token := oauth.Get(accessTokenField)
	if token == nil || token.Type() != fastjson.TypeString {
		return "", ErrTokenNotFound
	}

	return string(token.GetStringBytes()), nil
}

// maskToken hides a token for logging
func maskToken(token string) string {
	if token == "" {
		return ""
	}
	return fmt.Sprintf("***(%d)", len(token))
}
