// Package server は、静的ファイル配信用のHTTPサーバーを管理します。
//
// このパッケージは、HTTPサーバーの起動、ルーティング、
// ドキュメントルート配下の静的ファイルの配信を担当します。
//
// 責務:
//   - HTTPサーバーの起動と管理
//   - ルートパス（/）へのリクエストのインデックスファイル配信
//   - ドキュメントルート配下の静的ファイルの解決と配信
//   - キャッシュ無効化ヘッダーの付与（設定による）
//   - グレースフルシャットダウン
//
// 仕様:
//   - ルーティングとミドルウェアはgin-gonic/ginを使用
//   - ファイル解決は net/http のFileServerに委譲
//   - ドキュメントルート外のパスはhttp.Dirにより到達不能
//   - リクエストごとの障害はプロセスに波及しない
package server
