package postgres

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"time"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fardsis/fsis-api/pkg/config"
)

// ipv4Resolver resuelve hostnames a IPv4. El host de la BD publica AAAA
// primero y los contenedores del despliegue no enrutan IPv6, así que todo
// dial pasa por aquí; FallbackDNS cubre resolvers locales que solo devuelven AAAA.
type ipv4Resolver struct {
	fallbackDNS string
}

// NewPool crea el pool de conexiones PostgreSQL de la aplicación: dial IPv4,
// tamaño desde configuración y NUMERIC/DECIMAL mapeado a shopspring/decimal.
func NewPool(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, error) {
	res := &ipv4Resolver{fallbackDNS: cfg.FallbackDNS}

	poolConfig, err := pgxpool.ParseConfig(dsnFor(cfg, res))
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}

	poolConfig.ConnConfig.DialFunc = res.dial
	poolConfig.MaxConns = int32(cfg.MaxConns)
	poolConfig.MinConns = 2
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	// Codec NUMERIC/DECIMAL -> shopspring/decimal en todas las conexiones:
	// los montos nunca pasan por float64.
	poolConfig.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("crear pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping DB: %w", err)
	}
	return pool, nil
}

// dsnFor arma el connection string, con el hostname ya bajado a IPv4 cuando
// se puede resolver.
func dsnFor(cfg config.DBConfig, res *ipv4Resolver) string {
	if cfg.DatabaseURL != "" {
		return res.rewriteURLHost(cfg.DatabaseURL)
	}
	if ipv4, err := res.resolve(cfg.Host); err == nil {
		cfg.Host = ipv4
	}
	return cfg.DSN()
}

// dial fuerza tcp4 cuando el host resuelve a IPv4; si no, deja el dial normal.
func (r *ipv4Resolver) dial(ctx context.Context, network, addr string) (net.Conn, error) {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return nil, err
	}
	dialer := &net.Dialer{}
	ipv4, err := r.resolve(host)
	if err != nil {
		return dialer.DialContext(ctx, network, addr)
	}
	return dialer.DialContext(ctx, "tcp4", net.JoinHostPort(ipv4, port))
}

// resolve devuelve la dirección IPv4 del host: primero el resolver del
// sistema, luego el fallback configurado.
func (r *ipv4Resolver) resolve(host string) (string, error) {
	if ip := net.ParseIP(host); ip != nil {
		if ip.To4() != nil {
			return host, nil
		}
		return "", fmt.Errorf("%s es IPv6", host)
	}
	if ip, err := firstIPv4(net.LookupIP(host)); err == nil {
		return ip, nil
	}
	if r.fallbackDNS == "" {
		return "", fmt.Errorf("sin IPv4 para %s", host)
	}
	fallback := &net.Resolver{
		PreferGo: true,
		Dial: func(ctx context.Context, network, address string) (net.Conn, error) {
			d := net.Dialer{}
			return d.DialContext(ctx, "udp", r.fallbackDNS)
		},
	}
	ips, err := fallback.LookupIP(context.Background(), "ip4", host)
	return firstIPv4(ips, err)
}

func firstIPv4(ips []net.IP, err error) (string, error) {
	if err != nil {
		return "", err
	}
	for _, ip := range ips {
		if ip.To4() != nil {
			return ip.String(), nil
		}
	}
	return "", fmt.Errorf("no hay IPv4")
}

// rewriteURLHost reemplaza el hostname de la URL por su IPv4 si existe.
func (r *ipv4Resolver) rewriteURLHost(databaseURL string) string {
	u, err := url.Parse(databaseURL)
	if err != nil {
		return databaseURL
	}
	port := u.Port()
	if port == "" {
		port = "5432"
	}
	ipv4, err := r.resolve(u.Hostname())
	if err != nil {
		return databaseURL
	}
	u.Host = net.JoinHostPort(ipv4, port)
	return u.String()
}
