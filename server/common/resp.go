package common

const (
	RespCodeSuccess    = 0
	RespCodeParamError = 1
	RespCodeUnknown    = 2
)

type Resp struct {
	Code int         `json:"code"`
	Msg  string      `json:"msg"`
	Data interface{} `json:"data,omitempty"`
}

func MakeSuccessResp(data interface{}) Resp {
	return Resp{Code: RespCodeSuccess, Msg: "success", Data: data}
}

func MakeParamErrorResp(msg string) Resp {
	return Resp{Code: RespCodeParamError, Msg: msg}
}

func MakeUnknownErrorResp() Resp {
	return Resp{Code: RespCodeUnknown, Msg: "unknown error"}
}
