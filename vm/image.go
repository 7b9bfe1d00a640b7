package vm

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// loadImage copies an object image into memory. The first big-endian word is
// the origin; every following word lands at origin, origin+1, ... until the
// source ends or the top of memory is reached. A trailing odd byte is dropped.
// Words written before a read error stay in memory.
func loadImage(mem *Memory, r io.Reader) (origin Word, count int, err error) {
	br := bufio.NewReader(r)

	var buf [2]byte
	if _, err = io.ReadFull(br, buf[:]); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			err = ErrImageTruncated
		}
		return
	}
	origin = Word(binary.BigEndian.Uint16(buf[:]))

	maxRead := MemorySize - int(origin)
	for count < maxRead {
		if _, err = io.ReadFull(br, buf[:]); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				err = nil
			}
			return
		}
		mem.Write(origin+Word(count), Word(binary.BigEndian.Uint16(buf[:])))
		count++
	}
	return
}

// Load reads an object image into memory. Later images may overwrite earlier ones.
func (vm *VM) Load(r io.Reader) error {
	origin, count, err := loadImage(vm.memory, r)
	if err != nil {
		return err
	}
	vm.cpu.log.WithFields(logrus.Fields{
		"origin": fmt.Sprintf("0x%04x", uint16(origin)),
		"words":  count,
	}).Debug("image loaded")
	return nil
}

// LoadFile loads the object image at path.
func (vm *VM) LoadFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := vm.Load(file); err != nil {
		return fmt.Errorf("%v: %w", path, err)
	}
	return nil
}
