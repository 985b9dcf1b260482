package util

import (
	"log"
	"runtime"
)

func LogMemory() {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	log.Println("Alloc", mem.Alloc/1024/1024, "MB; TotalAlloc", mem.TotalAlloc/1024/1024, "MB; NumGC", mem.NumGC)
}
