package server

import "fmt"

const HTTP_SUCCESS = 200
const HTTP_BAD_REQUEST = 400
const HTTP_NOT_FOUND = 404
const HTTP_SERVER_ERR = 503

func (rs RunState) Name() string {
	switch rs {
	case RUN_NEW:
		return "RUN_NEW"
	case RUN_PLAY:
		return "RUN_PLAY"
	case RUN_OVER:
		return "RUN_OVER"
	case RUN_ERR:
		return "RUN_ERR"
	default:
		return fmt.Sprintf("n/a:%d", rs)
	}
}
