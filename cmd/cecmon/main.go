/*
NAME
  cecmon - HDMI-CEC bus monitor and address prober.

DESCRIPTION
  cecmon claims a playback logical address, polls the bus for present
  devices, announces its physical address and logs received traffic.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>
  Trek Hopton <trek@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// cecmon claims a logical address on the CEC bus, probes the bus for
// occupied addresses, and then logs decoded traffic until
// interrupted. It always runs against the simulated bus of
// device/hdmicec; it has no option to select a native line driver.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/maruel/interrupt"
	"github.com/spf13/pflag"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ausocean/cec/device/hdmicec"
	"github.com/ausocean/cec/protocol/cec"
	"github.com/ausocean/utils/logging"
)

// Current software version.
const version = "v1.0.0"

// Logging configuration.
const (
	logPath      = "/var/log/cecmon/cecmon.log"
	logMaxSize   = 100 // MB
	logMaxBackup = 5
	logMaxAge    = 28 // days
	logSuppress  = true
)

const pkg = "cecmon: "

// candidates are the logical addresses a playback device may claim,
// in claim order.
var candidates = []cec.LogicalAddress{
	cec.AddrPlaybackDevice1,
	cec.AddrPlaybackDevice2,
	cec.AddrPlaybackDevice3,
}

func main() {
	var (
		showVersion  = pflag.Bool("version", false, "show version")
		logVerbosity = pflag.Int8("verbosity", int8(logging.Info), "logging verbosity")
		filePath     = pflag.String("log", logPath, "log file path")
	)
	pflag.Parse()
	if *showVersion {
		fmt.Println(version)
		os.Exit(0)
	}

	// Create lumberjack logger to handle logging to file.
	fileLog := &lumberjack.Logger{
		Filename:   *filePath,
		MaxSize:    logMaxSize,
		MaxBackups: logMaxBackup,
		MaxAge:     logMaxAge,
	}

	log := logging.New(*logVerbosity, io.MultiWriter(fileLog, os.Stdout), logSuppress)

	sim := hdmicec.NewSim(map[cec.LogicalAddress]cec.PhysicalAddress{
		cec.AddrTV:          cec.NewPhysicalAddress(0, 0, 0, 0),
		cec.AddrAudioSystem: cec.NewPhysicalAddress(3, 0, 0, 0),
	})
	drv := hdmicec.New(sim, log)

	err := drv.Open()
	if err != nil {
		log.Fatal(pkg+"could not open driver", "error", err.Error())
	}

	interrupt.HandleCtrlC()
	go func() {
		<-interrupt.Channel
		log.Info(pkg + "interrupt received, closing driver")
		err := drv.Close()
		if err != nil {
			log.Error(pkg+"could not close driver", "error", err.Error())
		}
	}()

	la, err := claim(drv, log)
	if err != nil {
		log.Fatal(pkg+"could not claim a logical address", "error", err.Error())
	}

	scan(drv, la, log)
	announce(drv, la, log)
	monitor(drv, log)
}

// claim probes the candidate logical addresses and claims the first
// free one. A poll that fails with no-ACK means nobody answered, so
// the address is free to take.
func claim(drv *hdmicec.Driver, log logging.Logger) (cec.LogicalAddress, error) {
	for _, la := range candidates {
		err := drv.Poll(cec.AddrUnregistered, la)
		switch {
		case err == nil:
			log.Debug(pkg+"address occupied", "address", la.String())
		case errors.Is(err, cec.ErrNoAck):
			err = drv.AddLogicalAddress(la)
			if err != nil {
				return 0, err
			}
			log.Info(pkg+"claimed logical address", "address", la.String())
			return la, nil
		default:
			return 0, err
		}
	}
	return 0, errors.New("no free playback address on the bus")
}

// scan polls every logical address and logs which are occupied.
func scan(drv *hdmicec.Driver, self cec.LogicalAddress, log logging.Logger) {
	for la := cec.AddrTV; la < cec.AddrBroadcast; la++ {
		if la == self {
			continue
		}
		err := drv.Poll(self, la)
		switch {
		case err == nil:
			t, _ := la.Type()
			log.Info(pkg+"device present", "address", la.String(), "type", t.String())
		case errors.Is(err, cec.ErrNoAck):
			log.Debug(pkg+"no device", "address", la.String())
		default:
			log.Warning(pkg+"poll failed", "address", la.String(), "error", err.Error())
			return
		}
	}
}

// announce broadcasts this device's physical address, retrying once
// on a negative acknowledgment as the CTS requires, then asks the TV
// for its physical address.
func announce(drv *hdmicec.Driver, la cec.LogicalAddress, log logging.Logger) {
	pa, err := drv.PhysicalAddress()
	if err != nil {
		log.Error(pkg+"could not get physical address", "error", err.Error())
		return
	}

	t, _ := la.Type()
	f, err := cec.Encode(
		cec.Header{From: la, To: cec.AddrBroadcast},
		cec.ReportPhysicalAddress{PhysicalAddress: pa, DeviceType: t},
	)
	if err != nil {
		log.Error(pkg+"could not encode report physical address", "error", err.Error())
		return
	}
	err = drv.Write(f)
	if errors.Is(err, cec.ErrNoAck) {
		log.Debug(pkg + "broadcast report physical address not acknowledged, retrying")
		err = drv.Write(f)
	}
	if err != nil && !errors.Is(err, cec.ErrNoAck) {
		log.Error(pkg+"could not report physical address", "error", err.Error())
	}

	f, err = cec.Encode(cec.Header{From: la, To: cec.AddrTV}, cec.GivePhysicalAddress{})
	if err != nil {
		log.Error(pkg+"could not encode give physical address", "error", err.Error())
		return
	}
	err = drv.WriteAsync(f)
	if err != nil {
		log.Error(pkg+"could not request TV physical address", "error", err.Error())
	}
}

// monitor reads frames until the driver is closed, decoding and
// logging each.
func monitor(drv *hdmicec.Driver, log logging.Logger) {
	var f cec.Frame
	for {
		err := drv.Read(&f)
		if errors.Is(err, cec.ErrInvalidState) {
			log.Info(pkg + "driver closed, monitor stopping")
			return
		}
		if err != nil {
			log.Error(pkg+"read failed", "error", err.Error())
			return
		}

		h, m, err := cec.Decode(&f)
		if err != nil {
			log.Warning(pkg+"could not decode frame", "frame", f.String(), "error", err.Error())
			continue
		}
		log.Info(pkg+"received", "header", h.String(), "opcode", m.Opcode().String(), "frame", f.String())

		if u, ok := m.(cec.UnknownMessage); ok && !h.Broadcast() {
			reject(drv, h, u, log)
		}
	}
}

// reject answers a directed message with an unrecognized opcode with
// Feature Abort, as the CEC specification requires.
func reject(drv *hdmicec.Driver, h cec.Header, u cec.UnknownMessage, log logging.Logger) {
	f, err := cec.Encode(
		cec.Header{From: h.To, To: h.From},
		cec.FeatureAbort{Feature: u.Op, Reason: cec.AbortUnrecognizedOpcode},
	)
	if err != nil {
		log.Error(pkg+"could not encode feature abort", "error", err.Error())
		return
	}
	err = drv.WriteAsync(f)
	if err != nil {
		log.Error(pkg+"could not send feature abort", "error", err.Error())
	}
}
