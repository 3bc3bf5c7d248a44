package main

import (
	"encoding/binary"
	"net/http"
	_ "net/http/pprof"
	"os"
	"runtime"
	"runtime/pprof"
	"time"

	"github.com/rawbytedev/binview"
	"github.com/rawbytedev/binview/internal/common"
	"github.com/rawbytedev/binview/pkg/wire"
	"github.com/sirupsen/logrus"
)

// record layout: uvarint id | u32 little-endian length | payload
func buildStream(n int) []byte {
	var buf []byte
	payload := []byte("azerty hello world random")
	for i := 0; i < n; i++ {
		buf = common.WriteVarUint(buf, uint64(i)*131)
		buf = binary.LittleEndian.AppendUint32(buf, uint32(len(payload)))
		buf = append(buf, payload...)
	}
	return buf
}

func walk[V binview.View[V]](v V) (int, error) {
	count := 0
	for {
		if n, _ := v.BoundLen(); n == 0 {
			return count, nil
		}
		_, next, err := wire.Uvarint(v)
		if err != nil {
			return count, err
		}
		size, next, err := wire.Uint32(next, binary.LittleEndian)
		if err != nil {
			return count, err
		}
		if _, err = next.Transcribe(int(size)); err != nil {
			return count, err
		}
		if v, err = next.Skip(uint64(size)); err != nil {
			return count, err
		}
		count++
	}
}

func main() {
	log := logrus.New()
	log.SetOutput(os.Stdout)
	go func() {
		log.Println(http.ListenAndServe("localhost:6060", nil))
	}()
	f, err := os.Create("mem.prof")
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()
	runtime.MemProfileRate = 1

	stream := binview.NewShared(binview.Slice(buildStream(1000)), nil)
	for i := 0; i < 10000; i++ {
		n, err := walk(binview.New(stream))
		if err != nil {
			log.WithError(err).WithField("records", n).Fatal("walk failed")
		}
	}
	log.WithField("refs", stream.Refs()).Info("walks done")
	if err := pprof.WriteHeapProfile(f); err != nil {
		log.Fatal(err)
	}
	time.Sleep(5 * time.Minute)
}
