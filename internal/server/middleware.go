package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// requestID はレスポンスにX-Request-Idヘッダーを付与するミドルウェア
// クライアントが指定した値があればそれを引き継ぐ
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		c.Header("X-Request-Id", id)
		c.Next()
	}
}

// noCacheHeaders はすべてのレスポンスにキャッシュ無効化ヘッダーを
// 付与するミドルウェア
// ステータスコードに関係なく、クライアントと中間キャッシュの両方に
// レスポンスを保存させない
// net/httpのファイル配信はエラーレスポンス時にCache-Controlなどの
// ヘッダーを削除するため、事前の設定だけでは404に残らない
// ステータス書き込み時に再設定するライターでラップして担保する
func noCacheHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer = &noCacheWriter{ResponseWriter: c.Writer}
		setNoCacheHeaders(c.Writer.Header())
		c.Next()
	}
}

// noCacheWriter はステータス確定時にキャッシュ無効化ヘッダーを
// 再設定するレスポンスライター
type noCacheWriter struct {
	gin.ResponseWriter
}

func (w *noCacheWriter) WriteHeader(code int) {
	setNoCacheHeaders(w.Header())
	w.ResponseWriter.WriteHeader(code)
}

func (w *noCacheWriter) WriteHeaderNow() {
	setNoCacheHeaders(w.Header())
	w.ResponseWriter.WriteHeaderNow()
}

// setNoCacheHeaders はキャッシュ無効化ヘッダーの三つ組を設定する
func setNoCacheHeaders(h http.Header) {
	h.Set("Cache-Control", "no-cache, no-store, must-revalidate")
	h.Set("Pragma", "no-cache")
	h.Set("Expires", "0")
}
