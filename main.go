package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"
	"time"

	"git.fiblab.net/sim/catalogue/config"
	"git.fiblab.net/sim/catalogue/request"
	"git.fiblab.net/sim/catalogue/textio"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

var log = logrus.WithField("module", "catalogue")

var (
	// 配置信息
	configPath  = flag.String("config", "", "yaml config file path, flags set explicitly take precedence")
	mongoURI    = flag.String("mongo_uri", "", "mongo db uri (default $MONGO_URI)")
	basePathStr = flag.String("base", "", "extra base requests, can be empty [format: {fspath} or {db}.{col}]")
	inputPath   = flag.String("input", "", "request document path (empty means stdin)")
	format      = flag.String("format", "json", "request format [json, text]")
	logLevel    = flag.String("log-level", "info", "log level [debug, info, warn, error, fatal, panic]")

	// 服务模式
	serve       = flag.Bool("serve", false, "serve request documents over HTTP")
	listen      = flag.String("listen", "localhost:52101", "HTTP listening address")
	corsOrigins = flag.String("cors", "", "comma separated CORS allowed origins (empty means disable CORS)")
	cacheSize   = flag.Int("cache", 1024, "response cache size in serve mode (0 means disable cache)")

	// 性能测试
	benchmark = flag.Bool("benchmark", false, "benchmark mode")
	pprofAddr = flag.String("pprof", "", "pprof listening address (empty means disable pprof)")

	LOG_LEVELS = map[string]logrus.Level{
		"debug": logrus.DebugLevel,
		"info":  logrus.InfoLevel,
		"warn":  logrus.WarnLevel,
		"error": logrus.ErrorLevel,
		"fatal": logrus.FatalLevel,
		"panic": logrus.PanicLevel,
	}
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.0000",
	})
	_ = godotenv.Load()
	flag.Parse()
	if *configPath != "" {
		cfg, err := config.Load(*configPath)
		if err != nil {
			logrus.Fatalf("invalid config %s: %v", *configPath, err)
		}
		applyConfig(cfg, explicitFlags())
	}
	if level, ok := LOG_LEVELS[*logLevel]; ok {
		logrus.SetLevel(level)
	} else {
		logrus.Fatalf("invalid log level: %s", *logLevel)
	}
	if *mongoURI == "" {
		*mongoURI = os.Getenv("MONGO_URI")
	}

	if *pprofAddr != "" {
		// 启动pprof
		startHTTPDebugger(*pprofAddr)
	}

	if *benchmark {
		// 性能测试
		runBenchmark()
		return
	}

	basePath, err := NewPath(*basePathStr)
	if err != nil {
		log.Fatalf("invalid base path: %s", err)
	}
	base, err := LoadBaseRequests(context.Background(), *mongoURI, basePath)
	if err != nil {
		log.Fatalf("failed to load base requests from %v: %v", basePath, err)
	}

	if !*serve {
		if err := runInput(*inputPath, os.Stdout, *format, base); err != nil {
			log.Fatalf("failed to process requests: %v", err)
		}
		return
	}

	server := NewCatalogueServer(base, *cacheSize)
	// 使用HTTP/2 w.o. TLS
	s := &http.Server{
		Addr:    *listen,
		Handler: h2c.NewHandler(server.Routes(splitOrigins(*corsOrigins)), &http2.Server{}),
	}

	// 优雅退出
	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signalCh
		log.Info("stopping...")
		go func() {
			<-signalCh
			os.Exit(1) // 强制结束
		}()
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.Shutdown(ctx); err != nil {
			log.Warnf("shutdown: %v", err)
		}
	}()

	log.Infof("server listening at %v", s.Addr)
	if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("failed to serve: %v", err)
	}
	log.Info("catalogue closes")
}

// runInput 从文件（为空时从stdin）读取请求批次，返回前关闭文件
func runInput(path string, out io.Writer, format string, base []request.BaseRequest) error {
	if path == "" {
		return runCLI(os.Stdin, out, format, base)
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer f.Close()
	return runCLI(f, out, format, base)
}

// runCLI 读取一个请求批次并输出回答
func runCLI(in io.Reader, out io.Writer, format string, base []request.BaseRequest) error {
	w := bufio.NewWriter(out)
	switch format {
	case "json":
		doc, err := request.Decode(in)
		if err != nil {
			return err
		}
		doc.BaseRequests = slices.Concat(base, doc.BaseRequests)
		answers, err := request.Process(doc)
		if err != nil {
			return err
		}
		if err := request.Encode(w, answers); err != nil {
			return err
		}
	case "text":
		if len(base) > 0 {
			log.Warn("base requests are ignored in text format")
		}
		start := time.Now()
		c, queries, err := textio.Read(in)
		if err != nil {
			return err
		}
		log.Debugf("text input loaded in %v", time.Since(start))
		if err := textio.Answer(w, c, queries); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	return w.Flush()
}

// explicitFlags 命令行中显式设置的flag
func explicitFlags() map[string]bool {
	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) {
		set[f.Name] = true
	})
	return set
}

// applyConfig 用配置文件补全未显式设置的flag
func applyConfig(cfg *config.AppConfig, set map[string]bool) {
	apply := func(name string, dst *string, v string) {
		if v != "" && !set[name] {
			*dst = v
		}
	}
	apply("log-level", logLevel, cfg.LogLevel)
	apply("format", format, cfg.Format)
	apply("listen", listen, cfg.Server.Listen)
	apply("pprof", pprofAddr, cfg.Server.Pprof)
	apply("cors", corsOrigins, strings.Join(cfg.Server.CORSOrigins, ","))
	apply("mongo_uri", mongoURI, cfg.Source.MongoURI)
	apply("base", basePathStr, cfg.Source.Base)
	if cfg.Server.CacheSize > 0 && !set["cache"] {
		*cacheSize = cfg.Server.CacheSize
	}
}

func splitOrigins(s string) []string {
	origins := make([]string, 0)
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
