package server

import (
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
)

// handleIndex はルートパスとインデックスファイルのパスのハンドラ
// ドキュメントルート直下のインデックスファイルを直接配信する
func (s *Server) handleIndex(c *gin.Context) {
	// URLパスが /index.html のままだとServeFileが ./ への
	// 正規化リダイレクトを返すため、配信前にルートに揃える
	c.Request.URL.Path = "/"
	c.File(filepath.Join(s.config.Static.Root, s.config.Static.Index))
}

// staticHandler はドキュメントルート配下の静的ファイル解決ハンドラを返す
// 存在するファイルは推測されたContent-Typeで200、ディレクトリは
// 内包するindex.htmlまたは一覧、未解決のパスは404になる
// ドキュメントルート外へのパストラバーサルはhttp.Dirが拒否する
func (s *Server) staticHandler() gin.HandlerFunc {
	fileServer := http.FileServer(gin.Dir(s.config.Static.Root, true))
	return gin.WrapH(fileServer)
}
