package metadomain

// ErrorResponse representa a estrutura de erro da API do Meta.
// A API pode responder 200 com esse envelope, por isso Error é ponteiro.
type ErrorResponse struct {
	Error *ErrorDetails `json:"error"`
}

// ErrorDetails contém os detalhes de erro da API do Meta
type ErrorDetails struct {
	Message        string `json:"message"`
	Type           string `json:"type"`
	Code           int    `json:"code"`
	ErrorSubcode   int    `json:"error_subcode,omitempty"`
	IsTransient    bool   `json:"is_transient,omitempty"`
	ErrorUserTitle string `json:"error_user_title,omitempty"`
	ErrorUserMsg   string `json:"error_user_msg,omitempty"`
	FBTraceID      string `json:"fbtrace_id"`
}

// IsTokenExpired verifica se o erro é de token expirado ou revogado
func (e *ErrorDetails) IsTokenExpired() bool {
	if e == nil {
		return false
	}

	// 190 é "token expirado"; 460, 463 e 467 são subcódigos de token inválido
	return e.Code == 190 ||
		(e.Type == "OAuthException" && (e.ErrorSubcode == 460 || e.ErrorSubcode == 463 || e.ErrorSubcode == 467))
}
