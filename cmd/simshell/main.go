// cmd/simshell/main.go

// simshell is an interactive shell over a simulated board: scan the bus,
// read and write device registers, drive pins and feed the serial port.
// Useful for poking at a board profile before writing tests against it.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/google/shlex"

	"mockmachine-go/gpio"
	"mockmachine-go/profile"
)

func main() {
	log.SetFlags(0)
	profilePath := flag.String("profile", "", "YAML board profile (default: empty board)")
	flag.Parse()

	var (
		board *profile.Board
		err   error
	)
	if *profilePath != "" {
		var p *profile.Profile
		p, err = profile.Load(*profilePath)
		if err == nil {
			board, err = p.Build()
		}
	} else {
		board, err = (&profile.Profile{}).Build()
	}
	if err != nil {
		log.Fatalf("simshell: %v", err)
	}
	defer board.Close()

	log.Print("simshell ready; 'help' lists commands")
	sc := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !sc.Scan() {
			return
		}
		args, err := shlex.Split(sc.Text())
		if err != nil {
			log.Printf("parse: %v", err)
			continue
		}
		if len(args) == 0 {
			continue
		}
		if args[0] == "quit" || args[0] == "exit" {
			return
		}
		if err := dispatch(board, args[0], args[1:]); err != nil {
			log.Printf("%s: %v", args[0], err)
		}
	}
}

func dispatch(board *profile.Board, cmd string, args []string) error {
	switch cmd {
	case "help":
		log.Print(helpText)
		return nil

	case "scan":
		addrs := board.Bus.Scan()
		parts := make([]string, len(addrs))
		for i, a := range addrs {
			parts[i] = fmt.Sprintf("0x%02x", a)
		}
		log.Printf("[%s]", strings.Join(parts, " "))
		return nil

	case "readreg":
		addr, reg, n, err := addrRegN(args)
		if err != nil {
			return err
		}
		p, err := board.Bus.ReadRegister(addr, reg, n)
		if err != nil {
			return err
		}
		log.Printf("% x", p)
		return nil

	case "writereg":
		if len(args) < 3 {
			return fmt.Errorf("usage: writereg addr reg byte...")
		}
		addr, err := parseUint16(args[0])
		if err != nil {
			return err
		}
		reg, err := parseUint8(args[1])
		if err != nil {
			return err
		}
		p, err := parseBytes(args[2:])
		if err != nil {
			return err
		}
		return board.Bus.WriteRegister(addr, reg, p)

	case "read":
		if len(args) != 2 {
			return fmt.Errorf("usage: read addr n")
		}
		addr, err := parseUint16(args[0])
		if err != nil {
			return err
		}
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return err
		}
		p, err := board.Bus.ReadFrom(addr, n)
		if err != nil {
			return err
		}
		log.Printf("% x", p)
		return nil

	case "write":
		if len(args) < 2 {
			return fmt.Errorf("usage: write addr byte...")
		}
		addr, err := parseUint16(args[0])
		if err != nil {
			return err
		}
		p, err := parseBytes(args[1:])
		if err != nil {
			return err
		}
		n, err := board.Bus.WriteTo(addr, p)
		if err != nil {
			return err
		}
		log.Printf("acked %d", n)
		return nil

	case "pin":
		if len(args) < 1 {
			return fmt.Errorf("usage: pin name [0|1]")
		}
		name, err := board.Pins.Board().Resolve(args[0])
		if err != nil {
			return err
		}
		p := board.Pins.Pin(name, gpio.ModeInput, gpio.PullNone)
		if len(args) == 1 {
			log.Printf("%s = %d", name, p.Get())
			return nil
		}
		v, err := strconv.Atoi(args[1])
		if err != nil {
			return err
		}
		p.Set(v)
		return nil

	case "inject":
		if len(args) < 1 {
			return fmt.Errorf("usage: inject text")
		}
		n := board.UART.Inject([]byte(strings.Join(args, " ")))
		log.Printf("accepted %d", n)
		return nil

	case "uread":
		n := -1
		if len(args) == 1 {
			var err error
			n, err = strconv.Atoi(args[0])
			if err != nil {
				return err
			}
		}
		log.Printf("%q", board.UART.Read(n))
		return nil

	case "uline":
		log.Printf("%q", board.UART.ReadLine())
		return nil

	case "written":
		log.Printf("%q", board.UART.Written())
		return nil

	default:
		return fmt.Errorf("unknown command (try 'help')")
	}
}

func addrRegN(args []string) (uint16, uint8, int, error) {
	if len(args) != 3 {
		return 0, 0, 0, fmt.Errorf("usage: readreg addr reg n")
	}
	addr, err := parseUint16(args[0])
	if err != nil {
		return 0, 0, 0, err
	}
	reg, err := parseUint8(args[1])
	if err != nil {
		return 0, 0, 0, err
	}
	n, err := strconv.Atoi(args[2])
	if err != nil {
		return 0, 0, 0, err
	}
	return addr, reg, n, nil
}

func parseUint16(s string) (uint16, error) {
	v, err := strconv.ParseUint(s, 0, 16)
	return uint16(v), err
}

func parseUint8(s string) (uint8, error) {
	v, err := strconv.ParseUint(s, 0, 8)
	return uint8(v), err
}

func parseBytes(args []string) ([]byte, error) {
	p := make([]byte, len(args))
	for i, a := range args {
		v, err := strconv.ParseUint(a, 0, 8)
		if err != nil {
			return nil, err
		}
		p[i] = byte(v)
	}
	return p, nil
}

const helpText = `commands:
  scan                      list responding bus addresses
  read addr n               plain read from a device
  write addr byte...        plain write (prints ack count)
  readreg addr reg n        register read
  writereg addr reg byte... register write
  pin name [0|1]            get or set a pin (aliases resolve)
  inject text               feed the serial receive buffer
  uread [n]                 read serial data
  uline                     read one serial line
  written                   drain captured serial writes
  quit`
