package transfer

import (
	"fmt"
	"io"
	"net"
	"net/textproto"
	"path"
	"sort"
	"strings"
	"sync"
	"testing"
)

// testServer is a minimal in-memory FTP server speaking just enough of the
// protocol for goftp: login, CWD, MKD, EPSV, MLSD, STOR and STAT.
type testServer struct {
	listener net.Listener
	// unquotedMkd replies "257 Directory created." without the path
	unquotedMkd bool
	// readOnly refuses every MKD with 550
	readOnly bool

	mux      sync.Mutex
	dirs     map[string]bool
	files    map[string][]byte
	commands []string
}

func newTestServer(t *testing.T, options ...func(*testServer)) *testServer {
	l, err := net.Listen("tcp", "127.0.0.1:0")

	if err != nil {
		t.Fatalf("failed to listen: %s", err)
	}

	s := &testServer{
		listener: l,
		dirs:     map[string]bool{"/": true, "/Hdd1": true},
		files:    map[string][]byte{},
	}

	for _, o := range options {
		o(s)
	}

	go s.serve()

	t.Cleanup(func() { l.Close() })

	return s
}

func (s *testServer) port() int {
	return s.listener.Addr().(*net.TCPAddr).Port
}

func (s *testServer) hasDir(dir string) bool {
	s.mux.Lock()
	defer s.mux.Unlock()

	return s.dirs[path.Clean(dir)]
}

func (s *testServer) file(name string) ([]byte, bool) {
	s.mux.Lock()
	defer s.mux.Unlock()

	data, ok := s.files[path.Clean(name)]

	return data, ok
}

func (s *testServer) count(verb string) int {
	s.mux.Lock()
	defer s.mux.Unlock()

	n := 0

	for _, c := range s.commands {
		if strings.HasPrefix(c, verb+" ") || c == verb {
			n++
		}
	}

	return n
}

func (s *testServer) serve() {
	for {
		conn, err := s.listener.Accept()

		if err != nil {
			return
		}

		go s.handle(conn)
	}
}

func (s *testServer) handle(conn net.Conn) {
	defer conn.Close()

	tp := textproto.NewConn(conn)

	var passive net.Listener

	closePassive := func() {
		if passive != nil {
			passive.Close()
			passive = nil
		}
	}

	defer closePassive()

	reply := func(code int, msg string) {
		tp.PrintfLine("%d %s", code, msg)
	}

	reply(220, "ready")

	for {
		line, err := tp.ReadLine()

		if err != nil {
			return
		}

		verb, arg, _ := strings.Cut(line, " ")
		verb = strings.ToUpper(verb)

		s.mux.Lock()
		s.commands = append(s.commands, verb+" "+arg)
		s.mux.Unlock()

		switch verb {
		case "USER":
			reply(331, "password required")
		case "PASS":
			if arg == "wrong" {
				reply(530, "login incorrect")
				continue
			}

			reply(230, "logged in")
		case "TYPE":
			reply(200, "type set")
		case "CWD":
			if s.hasDir(arg) {
				reply(250, "directory changed")
			} else {
				reply(550, "no such directory")
			}
		case "MKD":
			dir := path.Clean(arg)

			if !s.mkdir(dir) {
				reply(550, "cannot create directory")
				continue
			}

			if s.unquotedMkd {
				reply(257, "Directory created.")
			} else {
				reply(257, fmt.Sprintf("%q created", dir))
			}
		case "EPSV":
			closePassive()

			l, err := net.Listen("tcp", "127.0.0.1:0")

			if err != nil {
				reply(425, "cannot open data connection")
				continue
			}

			passive = l

			reply(229, fmt.Sprintf("Entering Extended Passive Mode (|||%d|)", l.Addr().(*net.TCPAddr).Port))
		case "MLSD":
			lines, ok := s.list(arg)

			if !ok || passive == nil {
				closePassive()
				reply(550, "no such directory")
				continue
			}

			reply(150, "listing")

			data, err := passive.Accept()
			closePassive()

			if err != nil {
				reply(425, "data connection failed")
				continue
			}

			for _, l := range lines {
				fmt.Fprintf(data, "%s\r\n", l)
			}

			data.Close()

			reply(226, "listing done")
		case "STOR":
			name := path.Clean(arg)

			if !s.hasDir(path.Dir(name)) || passive == nil {
				closePassive()
				reply(550, "cannot store file")
				continue
			}

			reply(150, "ready for data")

			data, err := passive.Accept()
			closePassive()

			if err != nil {
				reply(425, "data connection failed")
				continue
			}

			content, _ := io.ReadAll(data)
			data.Close()

			s.mux.Lock()
			s.files[name] = content
			s.mux.Unlock()

			reply(226, "transfer complete")
		case "STAT":
			reply(211, "test server ready")
		case "QUIT":
			reply(221, "bye")
			return
		default:
			reply(502, "not implemented")
		}
	}
}

func (s *testServer) mkdir(dir string) bool {
	s.mux.Lock()
	defer s.mux.Unlock()

	if s.readOnly || s.dirs[dir] || !s.dirs[path.Dir(dir)] {
		return false
	}

	s.dirs[dir] = true

	return true
}

func (s *testServer) list(dir string) ([]string, bool) {
	s.mux.Lock()
	defer s.mux.Unlock()

	dir = path.Clean(dir)

	if !s.dirs[dir] {
		return nil, false
	}

	lines := []string{}

	for d := range s.dirs {
		if d != dir && path.Dir(d) == dir {
			lines = append(lines, "type=dir;size=0;modify=20240101000000; "+path.Base(d))
		}
	}

	for f, content := range s.files {
		if path.Dir(f) == dir {
			lines = append(lines, fmt.Sprintf("type=file;size=%d;modify=20240101000000; %s", len(content), path.Base(f)))
		}
	}

	sort.Strings(lines)

	return lines, true
}
