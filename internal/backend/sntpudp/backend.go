package sntpudp

import (
	"context"
	"net"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/gridclock/sntp-bridge/internal/config"
	"github.com/gridclock/sntp-bridge/internal/sntp"
	"github.com/gridclock/sntp-bridge/internal/sntp/packets"
)

// Backend implements an SNTP (UDP) client backend. Per poll interval it
// performs one request / response exchange against each configured server:
// one datagram out, one datagram in, guarded by a read deadline. Failed
// exchanges are fatal to that exchange only, the next tick starts fresh.
type Backend struct {
	sync.RWMutex

	// Cache of resolved server addresses, so the hostname is not resolved
	// on every poll tick.
	resolveCache *cache.Cache

	measurementFunc func(sntp.Measurement)

	servers      []string
	version      uint8
	timeout      time.Duration
	pollInterval time.Duration

	stopChan chan struct{}
	wg       sync.WaitGroup
	closed   bool
}

// NewBackend creates a new Backend.
func NewBackend(conf config.Config) (*Backend, error) {
	c := conf.Backend.SNTPUDP

	if len(c.Servers) == 0 {
		return nil, errors.New("at least one server must be configured")
	}

	version := c.ProtocolVersion
	if version == 0 {
		version = packets.ProtocolVersion4
	}
	if version != packets.ProtocolVersion3 && version != packets.ProtocolVersion4 {
		return nil, errors.Errorf("unsupported protocol version: %d", version)
	}

	b := &Backend{
		resolveCache: cache.New(c.ResolveCacheTTL, c.ResolveCacheTTL),
		servers:      c.Servers,
		version:      version,
		timeout:      c.Timeout,
		pollInterval: c.PollInterval,
		stopChan:     make(chan struct{}),
	}

	return b, nil
}

// SetMeasurementFunc sets the measurement handler func.
func (b *Backend) SetMeasurementFunc(f func(sntp.Measurement)) {
	b.measurementFunc = f
}

// Start starts the backend.
func (b *Backend) Start() error {
	for _, server := range b.servers {
		log.WithFields(log.Fields{
			"server":        server,
			"poll_interval": b.pollInterval,
		}).Info("backend/sntpudp: starting poll loop")

		b.wg.Add(1)
		go func(server string) {
			defer b.wg.Done()
			b.pollLoop(server)
		}(server)
	}

	return nil
}

// Stop stops the backend.
func (b *Backend) Stop() error {
	b.Lock()
	defer b.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true

	log.Info("backend/sntpudp: closing backend")
	close(b.stopChan)
	b.wg.Wait()
	return nil
}

func (b *Backend) pollLoop(server string) {
	ticker := time.NewTicker(b.pollInterval)
	defer ticker.Stop()

	for {
		b.poll(server)

		select {
		case <-b.stopChan:
			return
		case <-ticker.C:
		}
	}
}

func (b *Backend) poll(server string) {
	ctx, cancel := context.WithTimeout(context.Background(), b.timeout)
	defer cancel()

	m, err := b.Exchange(ctx, server)
	if err != nil {
		exchangeErrorCounter(server)
		log.WithError(err).WithFields(log.Fields{
			"server": server,
		}).Error("backend/sntpudp: exchange error")
		return
	}

	offsetGauge(server, m.Offset.Seconds())
	delayGauge(server, m.Delay.Seconds())

	if b.measurementFunc != nil {
		b.measurementFunc(m)
	}
}

// Exchange performs a single request / response exchange against the given
// server: the request packet is sent, then exactly one reply datagram is
// awaited. The wait is bounded by the context deadline so that a
// non-responsive peer can not block forever.
func (b *Backend) Exchange(ctx context.Context, server string) (sntp.Measurement, error) {
	var m sntp.Measurement

	addr, err := b.resolve(server)
	if err != nil {
		return m, err
	}

	conn, err := net.DialUDP("udp", nil, addr)
	if err != nil {
		return m, errors.Wrap(err, "dial udp error")
	}
	defer conn.Close()

	req := packets.NewClientPacket(b.version, time.Now())
	bb, err := req.MarshalBinary()
	if err != nil {
		return m, errors.Wrap(err, "marshal request packet error")
	}

	if _, err := conn.Write(bb); err != nil {
		return m, errors.Wrap(err, "write udp error")
	}
	udpWriteCounter(server)

	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(b.timeout)
	}
	if err := conn.SetReadDeadline(deadline); err != nil {
		return m, errors.Wrap(err, "set read deadline error")
	}

	buf := make([]byte, 1024)
	n, err := conn.Read(buf)
	if err != nil {
		return m, errors.Wrap(err, "read udp error")
	}
	destination := time.Now()
	udpReadCounter(server)

	var resp packets.Packet
	if err := resp.UnmarshalBinary(buf[:n]); err != nil {
		return m, errors.Wrap(err, "unmarshal response packet error")
	}

	b.validateResponse(server, req, resp)

	sample := sntp.Sample{
		Originate:   timestampTime(resp.Originate),
		Receive:     timestampTime(resp.Receive),
		Transmit:    timestampTime(resp.Transmit),
		Destination: destination,
	}

	delay, err := sample.Delay()
	if err != nil {
		return m, errors.Wrap(err, "compute delay error")
	}
	offset, err := sample.Offset()
	if err != nil {
		return m, errors.Wrap(err, "compute offset error")
	}

	if delay < 0 {
		log.WithFields(log.Fields{
			"server": server,
			"delay":  delay,
		}).Warning("backend/sntpudp: negative round-trip delay")
	}

	m = sntp.Measurement{
		Server:         server,
		Stratum:        resp.Stratum,
		LeapIndicator:  uint8(resp.LeapIndicator),
		Precision:      resp.Precision,
		ReferenceID:    resp.ReferenceID,
		RootDelay:      packets.ShortDuration(resp.RootDelay),
		RootDispersion: packets.ShortDuration(resp.RootDispersion),
		Delay:          delay,
		Offset:         offset,
		Time:           destination,
	}

	log.WithFields(log.Fields{
		"server":    server,
		"stratum":   m.Stratum,
		"delay_ms":  delay.Milliseconds(),
		"offset_ms": offset.Milliseconds(),
	}).Info("backend/sntpudp: exchange completed")

	return m, nil
}

// validateResponse performs the sanity checks of RFC 4330 §5. They are
// advisory: the outcome is logged, the measurement is still produced.
func (b *Backend) validateResponse(server string, req, resp packets.Packet) {
	fields := log.Fields{"server": server}

	if resp.Stratum == 0 {
		m := sntp.Measurement{Stratum: 0, ReferenceID: resp.ReferenceID}
		fields["kiss_code"] = m.KissCode()
		log.WithFields(fields).Warning("backend/sntpudp: kiss-of-death response")
	}

	if resp.Mode != packets.ModeServer {
		fields["mode"] = resp.Mode
		log.WithFields(fields).Warning("backend/sntpudp: response mode is not server")
	}

	if resp.LeapIndicator == packets.LeapNotInSync {
		log.WithFields(fields).Warning("backend/sntpudp: server clock not synchronized")
	}

	if resp.Transmit.IsZero() {
		log.WithFields(fields).Warning("backend/sntpudp: response transmit timestamp not set")
	}

	if resp.Originate != req.Transmit {
		log.WithFields(fields).Warning("backend/sntpudp: originate timestamp does not echo the request")
	}
}

func (b *Backend) resolve(server string) (*net.UDPAddr, error) {
	if v, ok := b.resolveCache.Get(server); ok {
		return v.(*net.UDPAddr), nil
	}

	addr, err := net.ResolveUDPAddr("udp", server)
	if err != nil {
		return nil, errors.Wrap(err, "resolve udp addr error")
	}

	log.WithFields(log.Fields{
		"server": server,
		"addr":   addr,
	}).Debug("backend/sntpudp: resolved server address")

	b.resolveCache.Set(server, addr, cache.DefaultExpiration)
	return addr, nil
}

// timestampTime maps a wire timestamp to a time.Time, turning the all-zero
// sentinel into the zero time.Time. The zero-as-absent reading is a wire
// convention: a zero field in a response role means "not supplied", not
// the literal 1900 epoch.
func timestampTime(ts packets.Timestamp) time.Time {
	if ts.IsZero() {
		return time.Time{}
	}
	return ts.Time()
}
