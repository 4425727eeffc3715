package main

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"slices"

	"connectrpc.com/connect"
	"git.fiblab.net/sim/catalogue/request"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/puzpuzpuz/xsync/v3"
)

const (
	PROCESS_PROCEDURE = "/catalogue.v1.CatalogueService/Process"
	REQUEST_ID_HEADER = "X-Request-Id"
	// 单个请求文档的最大字节数
	MAX_BODY_SIZE = 16 << 20
)

// CatalogueServer 每个请求文档独立建立目录并回答，结果按文档内容缓存
type CatalogueServer struct {
	// 预加载的base_requests，拼接在每个文档之前
	base []request.BaseRequest

	cache     *xsync.MapOf[string, []byte]
	cacheSize int

	requests  *xsync.Counter
	cacheHits *xsync.Counter
}

func NewCatalogueServer(base []request.BaseRequest, cacheSize int) *CatalogueServer {
	return &CatalogueServer{
		base:      base,
		cache:     xsync.NewMapOf[string, []byte](),
		cacheSize: cacheSize,
		requests:  xsync.NewCounter(),
		cacheHits: xsync.NewCounter(),
	}
}

// Process 处理一个JSON请求文档，返回编码后的回答数组
func (s *CatalogueServer) Process(ctx context.Context, body []byte) ([]byte, error) {
	s.requests.Inc()
	sum := sha256.Sum256(body)
	key := hex.EncodeToString(sum[:])
	if out, ok := s.cache.Load(key); ok {
		s.cacheHits.Inc()
		return out, nil
	}

	doc, err := request.Decode(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	doc.BaseRequests = slices.Concat(s.base, doc.BaseRequests)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	answers, err := request.Process(doc)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := request.Encode(&buf, answers); err != nil {
		return nil, err
	}
	out := buf.Bytes()

	if s.cacheSize > 0 {
		if s.cache.Size() >= s.cacheSize {
			// 缓存已满，整体清空
			log.Debugf("response cache is full (%d), clear it", s.cacheSize)
			s.cache.Clear()
		}
		s.cache.Store(key, out)
	}
	return out, nil
}

func (s *CatalogueServer) ProcessRPC(
	ctx context.Context,
	req *connect.Request[json.RawMessage],
) (*connect.Response[json.RawMessage], error) {
	out, err := s.Process(ctx, *req.Msg)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}
	msg := json.RawMessage(out)
	return connect.NewResponse(&msg), nil
}

func (s *CatalogueServer) handleProcess(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MAX_BODY_SIZE))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": err.Error()})
		return
	}
	out, err := s.Process(r.Context(), body)
	if err != nil {
		log.WithField("request_id", w.Header().Get(REQUEST_ID_HEADER)).Warnf("bad request document: %v", err)
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": err.Error()})
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(out)
}

func (s *CatalogueServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":        "ok",
		"base_requests": len(s.base),
		"requests":      s.requests.Value(),
		"cache_hits":    s.cacheHits.Value(),
		"cached":        s.cache.Size(),
	})
}

// Routes HTTP路由：REST接口与connect接口共用同一处理逻辑
func (s *CatalogueServer) Routes(corsOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestID)
	if len(corsOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsOrigins,
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"*"},
			ExposedHeaders: []string{REQUEST_ID_HEADER},
		}))
	}
	r.Get("/healthz", s.handleHealth)
	r.Post("/v1/process", s.handleProcess)
	r.Handle(PROCESS_PROCEDURE, connect.NewUnaryHandler(
		PROCESS_PROCEDURE,
		s.ProcessRPC,
		connect.WithCodec(jsonCodec{}),
	))
	return r
}

// requestID 为每个请求分配ID，客户端已提供时沿用
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(REQUEST_ID_HEADER)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(REQUEST_ID_HEADER, id)
		log.WithField("request_id", id).Debugf("%s %s", r.Method, r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warnf("write response: %v", err)
	}
}

// jsonCodec 请求与回答都是原始JSON文档，不经过protobuf
type jsonCodec struct{}

func (jsonCodec) Name() string { return "json" }

func (jsonCodec) Marshal(msg any) ([]byte, error) {
	raw, ok := msg.(*json.RawMessage)
	if !ok {
		return nil, fmt.Errorf("unexpected message type %T", msg)
	}
	return *raw, nil
}

func (jsonCodec) Unmarshal(data []byte, msg any) error {
	raw, ok := msg.(*json.RawMessage)
	if !ok {
		return fmt.Errorf("unexpected message type %T", msg)
	}
	*raw = slices.Clone(data)
	return nil
}
