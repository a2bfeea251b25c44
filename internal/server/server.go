package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"haishin/internal/config"

	"github.com/gin-gonic/gin"
)

// Server はHTTPサーバーを管理する構造体
type Server struct {
	config     *config.Config
	engine     *gin.Engine
	httpServer *http.Server
	listener   net.Listener
	out        io.Writer
}

// New は新しいServerインスタンスを作成する
// ルーティングはここで構築するため、ソケットをバインドしなくても
// Handler経由でリクエスト処理をテストできる
func New(cfg *config.Config) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	s := &Server{
		config: cfg,
		engine: engine,
		out:    os.Stdout,
		httpServer: &http.Server{
			Addr:         cfg.ServerAddress(),
			Handler:      engine,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		},
	}

	s.setupRoutes()
	return s
}

// setupRoutes はHTTPルートとミドルウェアを設定する
func (s *Server) setupRoutes() {
	// リクエスト単位の障害がプロセスを巻き込まないようにする
	s.engine.Use(gin.Recovery())
	s.engine.Use(requestID())

	// キャッシュ無効化モードでは全レスポンスにヘッダーを付与する
	if s.config.Static.DisableCache {
		s.engine.Use(noCacheHeaders())
	}

	// ルートパスとインデックスファイルのパスは直接配信する
	// FileServerはインデックスファイルへのリクエストを ./ にリダイレクト
	// するため、ここを委譲するとステータスとボディが一致しなくなる
	s.engine.GET("/", s.handleIndex)
	s.engine.GET("/"+s.config.Static.Index, s.handleIndex)

	// それ以外のパスは静的ファイル解決に委譲する
	s.engine.NoRoute(s.staticHandler())
}

// Handler はリクエスト処理のエントリポイントを返す
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Port は実際にバインドされたポート番号を返す
func (s *Server) Port() int {
	if s.listener != nil {
		if addr, ok := s.listener.Addr().(*net.TCPAddr); ok {
			return addr.Port
		}
	}
	return s.config.Server.Port
}

// Start はサーバーを起動する
// バインドに失敗した場合はリトライせず即座にエラーを返す
func (s *Server) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.config.ServerAddress())
	if err != nil {
		return fmt.Errorf("アドレス %s のバインドに失敗: %w", s.config.ServerAddress(), err)
	}
	s.listener = listener

	// 起動メッセージを出力する
	fmt.Fprintf(s.out, "Server running at http://localhost:%d/\n", s.Port())
	if !s.config.Static.DisableCache {
		fmt.Fprintln(s.out, "This will automatically serve index.html for the root path")
	}

	// シャットダウン用のチャンネル
	shutdownCh := make(chan error, 1)

	// サーバーを別ゴルーチンで起動
	go func() {
		if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			shutdownCh <- fmt.Errorf("サーバーの実行に失敗: %w", err)
		}
	}()

	// シグナルハンドリング
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	// コンテキストかシグナルを待つ
	select {
	case <-ctx.Done():
		log.Println("コンテキストがキャンセルされました")
	case sig := <-sigCh:
		log.Printf("シグナルを受信しました: %v", sig)
	case err := <-shutdownCh:
		s.listener.Close()
		return err
	}

	// グレースフルシャットダウン
	return s.Shutdown()
}

// Shutdown はサーバーをグレースフルにシャットダウンする
func (s *Server) Shutdown() error {
	log.Println("サーバーをシャットダウンしています...")

	// 5秒のタイムアウトを設定
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("サーバーのシャットダウンに失敗: %w", err)
	}

	log.Println("サーバーが正常にシャットダウンされました")
	return nil
}
