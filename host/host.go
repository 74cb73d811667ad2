// Package host runs QUIC endpoints whose peers are identified by ed25519 keys.
// Every connection carries a stream of length-delimited protobuf messages in
// each direction.
package host

import (
	"context"
	"crypto"
	"crypto/ed25519"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"errors"
	"fmt"
	"io"
	"math/big"
	"net"
	"net/netip"
	"sync"
	"sync/atomic"
	"time"

	gogoio "github.com/gogo/protobuf/io"
	"github.com/gogo/protobuf/proto"
	logging "github.com/ipfs/go-log/v2"
	ic "github.com/libp2p/go-libp2p/core/crypto"
	"github.com/libp2p/go-libp2p/core/peer"
	quic "github.com/quic-go/quic-go"
)

var log = logging.Logger("host")

const (
	DefaultPort = 7001

	// Protocol is the ALPN identifier of the query protocol
	Protocol = "gfpoly/1"

	// DefaultMaxMessageSize bounds a single received message
	DefaultMaxMessageSize = 64 << 20
)

var ErrDuplicateConnection = errors.New("already connected to peer")

// HostOption configures a Host during construction
type HostOption func(*Host) error

// Host manages QUIC connections to peers
type Host struct {
	ctx       context.Context
	cancel    context.CancelFunc
	waitGroup sync.WaitGroup

	mutex       sync.Mutex
	connections map[peer.ID]*Conn

	certificate    *tls.Certificate
	endpoint       *net.UDPAddr
	peerID         peer.ID
	privateKey     crypto.PrivateKey
	idleTimeout    time.Duration
	maxMessageSize int

	transport *quic.Transport
	listener  *quic.Listener

	bytesSent     atomic.Uint64
	bytesReceived atomic.Uint64

	addHandler    AddPeerHandler
	removeHandler RemovePeerHandler
}

// NewHost creates a Host listening on its endpoint
func NewHost(opts ...HostOption) (*Host, error) {
	ctx, cancel := context.WithCancel(context.Background())

	h := &Host{
		ctx:    ctx,
		cancel: cancel,

		endpoint:       net.UDPAddrFromAddrPort(netip.AddrPortFrom(netip.IPv4Unspecified(), DefaultPort)),
		connections:    make(map[peer.ID]*Conn),
		idleTimeout:    5 * time.Minute,
		maxMessageSize: DefaultMaxMessageSize,
	}
	for _, opt := range opts {
		if err := opt(h); err != nil {
			cancel()
			return nil, err
		}
	}

	if h.privateKey == nil {
		_, privateKey, err := ed25519.GenerateKey(rand.Reader)
		if err != nil {
			cancel()
			return nil, err
		}
		if err := WithIdentity(privateKey)(h); err != nil {
			cancel()
			return nil, err
		}
	}

	var err error
	if h.certificate, err = createTLSCertFromKey(h.privateKey); err != nil {
		cancel()
		return nil, err
	}

	udpConn, err := net.ListenUDP("udp", h.endpoint)
	if err != nil {
		cancel()
		return nil, err
	}
	h.transport = &quic.Transport{Conn: udpConn}

	tlsConfig := &tls.Config{
		Certificates: []tls.Certificate{*h.certificate},
		ClientAuth:   tls.RequireAnyClientCert,
		NextProtos:   []string{Protocol},
	}
	h.listener, err = h.transport.Listen(tlsConfig, h.quicConfig())
	if err != nil {
		h.transport.Close()
		cancel()
		return nil, err
	}

	h.waitGroup.Add(1)
	go h.acceptLoop()

	return h, nil
}

func (h *Host) quicConfig() *quic.Config {
	return &quic.Config{
		MaxIdleTimeout:  h.idleTimeout,
		KeepAlivePeriod: h.idleTimeout / 2,
	}
}

// Connect dials a peer and returns the new connection
func (h *Host) Connect(ctx context.Context, addr net.Addr) (*Conn, error) {
	// Dialing stops when either the host or the request context is done
	dialCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(h.ctx, cancel)
	defer stop()

	tlsConfig := &tls.Config{
		Certificates: []tls.Certificate{*h.certificate},
		// The server is authenticated by the peer ID derived from its certificate
		InsecureSkipVerify: true,
		NextProtos:         []string{Protocol},
	}
	qconn, err := h.transport.Dial(dialCtx, addr, tlsConfig, h.quicConfig())
	if err != nil {
		return nil, err
	}

	conn, err := h.handleConnection(qconn)
	if err != nil {
		qconn.CloseWithError(0, err.Error())
		return nil, err
	}
	log.Infof("connected to %s at %s", conn.Peer(), addr)
	return conn, nil
}

// Conn returns the live connection to a peer
func (h *Host) Conn(id peer.ID) (*Conn, bool) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	conn, ok := h.connections[id]
	return conn, ok
}

// Peers returns the IDs of the connected peers
func (h *Host) Peers() []peer.ID {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	ids := make([]peer.ID, 0, len(h.connections))
	for id := range h.connections {
		ids = append(ids, id)
	}
	return ids
}

func (h *Host) LocalAddr() net.Addr {
	return h.transport.Conn.LocalAddr()
}

func (h *Host) ID() peer.ID {
	return h.peerID
}

// Close closes every connection and waits for the background goroutines
func (h *Host) Close() error {
	h.cancel()
	err := h.transport.Close()
	h.waitGroup.Wait()
	return err
}

// AddPeerHandler is called when a new peer connects
type AddPeerHandler func(peer.ID, *Conn)

// RemovePeerHandler is called when a peer disconnects
type RemovePeerHandler func(peer.ID)

// SetPeerHandlers registers callbacks for peer connection events. The add
// handler is called at once for the peers already connected.
func (h *Host) SetPeerHandlers(addHandler AddPeerHandler, removeHandler RemovePeerHandler) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	h.addHandler = addHandler
	h.removeHandler = removeHandler

	if h.addHandler != nil {
		for id, conn := range h.connections {
			h.addHandler(id, conn)
		}
	}
}

// handleConnection registers a new connection, incoming or outgoing
func (h *Host) handleConnection(qconn quic.Connection) (*Conn, error) {
	certs := qconn.ConnectionState().TLS.PeerCertificates
	if len(certs) == 0 {
		return nil, fmt.Errorf("peer at %s presented no certificate", qconn.RemoteAddr())
	}
	id, err := parsePeerIDFromCertificate(certs[0])
	if err != nil {
		return nil, fmt.Errorf("failed parsing for a peer ID from the TLS certificate: %w", err)
	}

	h.mutex.Lock()
	defer h.mutex.Unlock()

	if _, exists := h.connections[id]; exists {
		return nil, fmt.Errorf("%w %s", ErrDuplicateConnection, id)
	}

	conn := newConn(qconn, id, h)
	h.connections[id] = conn
	if h.addHandler != nil {
		h.addHandler(id, conn)
	}

	h.waitGroup.Add(1)
	go func() {
		defer h.waitGroup.Done()
		<-qconn.Context().Done()

		h.mutex.Lock()
		defer h.mutex.Unlock()
		delete(h.connections, id)
		if h.removeHandler != nil {
			h.removeHandler(id)
		}
	}()
	return conn, nil
}

func (h *Host) acceptLoop() {
	defer h.waitGroup.Done()

	log.Infof("listening on %s as %s", h.LocalAddr(), h.peerID)

	for {
		qconn, err := h.listener.Accept(h.ctx)
		if err != nil {
			if h.ctx.Err() == nil {
				log.Warnf("listener accept error: %v", err)
			}
			return
		}

		conn, err := h.handleConnection(qconn)
		if err != nil {
			log.Warnf("failed to handle connection: %v", err)
			qconn.CloseWithError(0, err.Error())
			continue
		}
		log.Infof("accepted connection from %s at %s", conn.Peer(), qconn.RemoteAddr())
	}
}

// BytesSent returns the number of bytes written to all streams
func (h *Host) BytesSent() uint64 {
	return h.bytesSent.Load()
}

// BytesReceived returns the number of bytes read from all streams
func (h *Host) BytesReceived() uint64 {
	return h.bytesReceived.Load()
}

func WithAddrPort(ep netip.AddrPort) HostOption {
	return func(h *Host) error {
		h.endpoint = net.UDPAddrFromAddrPort(ep)
		return nil
	}
}

// WithIdleTimeout closes connections without traffic for d
func WithIdleTimeout(d time.Duration) HostOption {
	return func(h *Host) error {
		if d <= 0 {
			return fmt.Errorf("idle timeout must be positive, got %v", d)
		}
		h.idleTimeout = d
		return nil
	}
}

// WithMaxMessageSize bounds the size of a received message
func WithMaxMessageSize(n int) HostOption {
	return func(h *Host) error {
		if n <= 0 {
			return fmt.Errorf("maximum message size must be positive, got %d", n)
		}
		h.maxMessageSize = n
		return nil
	}
}

// WithIdentity sets the host's identity from a private key
func WithIdentity(privateKey crypto.PrivateKey) HostOption {
	return func(h *Host) error {
		key, ok := privateKey.(ed25519.PrivateKey)
		if !ok {
			return fmt.Errorf("unsupported key type: %T", privateKey)
		}
		privkey, err := ic.UnmarshalEd25519PrivateKey(key)
		if err != nil {
			return err
		}
		id, err := peer.IDFromPublicKey(privkey.GetPublic())
		if err != nil {
			return err
		}
		h.privateKey = privateKey
		h.peerID = id
		return nil
	}
}

// Conn is a connection to a peer. Send may be called concurrently; Receive
// must be called from a single goroutine.
type Conn struct {
	conn quic.Connection
	peer peer.ID
	host *Host

	sendMutex sync.Mutex
	writer    gogoio.WriteCloser

	recvReady chan struct{} // closed once the peer's stream is accepted
	reader    gogoio.ReadCloser
	recvErr   error
}

func newConn(qconn quic.Connection, id peer.ID, h *Host) *Conn {
	c := &Conn{
		conn:      qconn,
		peer:      id,
		host:      h,
		recvReady: make(chan struct{}),
	}
	go c.acceptStream()
	return c
}

func (c *Conn) acceptStream() {
	defer close(c.recvReady)
	stream, err := c.conn.AcceptStream(c.conn.Context())
	if err != nil {
		c.recvErr = err
		return
	}
	c.reader = gogoio.NewDelimitedReader(&countingReader{r: stream, n: &c.host.bytesReceived}, c.host.maxMessageSize)
}

// Send writes a message to the peer
func (c *Conn) Send(msg proto.Message) error {
	c.sendMutex.Lock()
	defer c.sendMutex.Unlock()

	if c.writer == nil {
		stream, err := c.conn.OpenStreamSync(c.conn.Context())
		if err != nil {
			return err
		}
		c.writer = gogoio.NewDelimitedWriter(&countingWriter{w: stream, n: &c.host.bytesSent})
	}
	return c.writer.WriteMsg(msg)
}

// Receive reads the next message from the peer into msg
func (c *Conn) Receive(ctx context.Context, msg proto.Message) error {
	select {
	case <-c.recvReady:
	case <-ctx.Done():
		return ctx.Err()
	}
	if c.recvErr != nil {
		return c.recvErr
	}
	return c.reader.ReadMsg(msg)
}

// Peer returns the ID of the remote peer
func (c *Conn) Peer() peer.ID {
	return c.peer
}

// Done is closed when the connection is closed
func (c *Conn) Done() <-chan struct{} {
	return c.conn.Context().Done()
}

func (c *Conn) LocalAddr() net.Addr {
	return c.conn.LocalAddr()
}

func (c *Conn) RemoteAddr() net.Addr {
	return c.conn.RemoteAddr()
}

func (c *Conn) Close() error {
	return c.conn.CloseWithError(0, "")
}

type countingWriter struct {
	w io.Writer
	n *atomic.Uint64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n.Add(uint64(n))
	return n, err
}

type countingReader struct {
	r io.Reader
	n *atomic.Uint64
}

func (cr *countingReader) Read(p []byte) (int, error) {
	n, err := cr.r.Read(p)
	cr.n.Add(uint64(n))
	return n, err
}

// createTLSCertFromKey creates a self-signed certificate from a private key
func createTLSCertFromKey(key crypto.PrivateKey) (*tls.Certificate, error) {
	privateKey, ok := key.(ed25519.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("unsupported key type: %T", key)
	}

	template := x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "gfpoly"},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(365 * 24 * time.Hour),
		KeyUsage:     x509.KeyUsageDigitalSignature,
		ExtKeyUsage:  []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth, x509.ExtKeyUsageClientAuth},
	}
	certDER, err := x509.CreateCertificate(rand.Reader, &template, &template, privateKey.Public(), privateKey)
	if err != nil {
		return nil, err
	}
	keyBytes, err := x509.MarshalPKCS8PrivateKey(privateKey)
	if err != nil {
		return nil, err
	}

	certPEM := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: certDER})
	keyPEM := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: keyBytes})
	cert, err := tls.X509KeyPair(certPEM, keyPEM)
	if err != nil {
		return nil, err
	}
	return &cert, nil
}

// parsePeerIDFromCertificate derives the peer ID from the certificate key
func parsePeerIDFromCertificate(cert *x509.Certificate) (peer.ID, error) {
	key, ok := cert.PublicKey.(ed25519.PublicKey)
	if !ok {
		return "", fmt.Errorf("unsupported public key type: %T", cert.PublicKey)
	}
	pubkey, err := ic.UnmarshalEd25519PublicKey(key)
	if err != nil {
		return "", err
	}
	return peer.IDFromPublicKey(pubkey)
}
