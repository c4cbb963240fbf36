package main

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/go-zookeeper/zk"
	"github.com/lab2439/uuid"
)

const (
	MaxWorkerID = 1 << 10 // up to 1024 registered nodes per service

	ZKRootPath = "/uuid_nodes" // Root path in Zookeeper for node registration
)

// NodeDriver owns a Zookeeper-registered worker identity and a time-based
// UUID generator stamped with the node ID derived from it.
type NodeDriver struct {
	gen      *uuid.TimeGenerator
	workerID int64

	zkClient *zk.Conn // Zookeeper client connection
	service  string   // Service name (affects ZK node path)
	port     int      // Port (used to derive node uniqueness)

	mu       sync.Mutex
	lastTime int64 // Last heartbeat timestamp in ms
}

// NodeInfo represents info stored for each worker in both ZK and cache file.
type NodeInfo struct {
	LastTime   int64 `json:"last_time"`   // Last timestamp this node was active
	CreateTime int64 `json:"create_time"` // Creation timestamp
	WorkerID   int64 `json:"worker_id"`   // Worker ID
}

// nodeID maps a worker ID onto a 48-bit node field. The first octet gets the
// locally-administered bit so it never collides with a burned-in MAC address.
func nodeID(workerID int64) [6]byte {
	var node [6]byte
	binary.BigEndian.PutUint32(node[2:], uint32(workerID))
	node[0] = 0x02
	return node
}

// NewNodeDriver connects to Zookeeper, registers or recovers a worker ID, and
// builds a v1/v6 generator bound to the derived node ID.
func NewNodeDriver(zkServers []string, serviceName string, port int) (*NodeDriver, error) {
	driver := &NodeDriver{
		service: serviceName,
		port:    port,
	}

	c, _, err := zk.Connect(zkServers, time.Second*5) // Connect to Zookeeper
	if err != nil {
		return nil, fmt.Errorf("connect zk failed: %v", err)
	}
	driver.zkClient = c

	workerID, err := driver.registerOrRecover() // Register or recover workerID
	if err != nil {
		return nil, err
	}
	driver.workerID = workerID

	gen, err := uuid.NewTimeGenerator()
	if err != nil {
		return nil, err
	}
	gen.SetNodeID(nodeID(workerID))
	driver.gen = gen

	log.Printf("node driver initialized with workerID: %d, node: %x", workerID, nodeID(workerID))

	// Periodically upload heartbeat and update state to Zookeeper and cache
	go driver.scheduledUploadTime()
	return driver, nil
}

// registerOrRecover registers this node to Zookeeper or recovers assignment from cache or ZK.
func (d *NodeDriver) registerOrRecover() (int64, error) {
	// Build the ZK service path: e.g., /uuid_nodes/serviceName
	servicePath := fmt.Sprintf("%s/%s", ZKRootPath, d.service)
	d.ensurePath(ZKRootPath)
	d.ensurePath(servicePath)

	nodeKey := fmt.Sprintf("%s/node-%d", servicePath, d.port) // Unique nodeKey per service+port

	var myNodeInfo NodeInfo
	var workerID int64

	exists, _, err := d.zkClient.Exists(nodeKey)
	if err != nil {
		return 0, fmt.Errorf("check node existence failed: %v", err)
	}

	if exists {
		// Attempt to recover workerID from ZK node
		data, _, err := d.zkClient.Get(nodeKey)
		if err != nil {
			return 0, fmt.Errorf("get node info failed: %v", err)
		}
		json.Unmarshal(data, &myNodeInfo)
		workerID = myNodeInfo.WorkerID

		currentTime := time.Now().UnixMilli()
		// Detect system clock rollback
		if currentTime < myNodeInfo.LastTime {
			return 0, fmt.Errorf("clock moved backwards: %d < %d", currentTime, myNodeInfo.LastTime)
		}

		log.Printf("recover workerID: %d from zk", workerID)
	} else {
		// Not registered in ZK, try local cache first
		cachedNode, err := d.loadLocalCache()
		if err == nil {
			workerID = cachedNode.WorkerID
			// Check for clock rollback against cached time
			if time.Now().UnixMilli() < cachedNode.LastTime {
				return 0, fmt.Errorf("clock moved backwards: %d < %d", time.Now().UnixMilli(), cachedNode.LastTime)
			}
			log.Printf("recover workerID: %d from local cache", workerID)
		} else {
			// Assign workerID by hash/modulo if nothing found (simple assignment logic)
			workerID = int64(d.port % MaxWorkerID)
		}

		now := time.Now().UnixMilli()
		myNodeInfo = NodeInfo{
			WorkerID:   workerID,
			LastTime:   now,
			CreateTime: now,
		}
	}

	// Register or update node info in Zookeeper
	bytes, _ := json.Marshal(myNodeInfo)
	if exists {
		_, err = d.zkClient.Set(nodeKey, bytes, -1)
	} else {
		_, err = d.zkClient.Create(nodeKey, bytes, 0, zk.WorldACL(zk.PermAll))
	}
	if err != nil {
		return 0, fmt.Errorf("register or update node info failed: %v", err)
	}

	// Save to a local cache file for local recovery
	d.saveLocalCache(myNodeInfo)
	d.lastTime = myNodeInfo.LastTime
	return workerID, nil
}

// NextUUID generates the next version 1 UUID stamped with this node's identity.
// The generator handles per-call clock regression with its clock sequence.
func (d *NodeDriver) NextUUID() (uuid.UUID, error) {
	return d.gen.NewV1()
}

// NextUUIDSorted is the sortable variant of NextUUID (version 6 field order).
func (d *NodeDriver) NextUUIDSorted() (uuid.UUID, error) {
	return d.gen.NewV6()
}

// scheduledUploadTime periodically updates this node's info in Zookeeper and the local cache.
func (d *NodeDriver) scheduledUploadTime() {
	ticker := time.NewTicker(3 * time.Second)
	nodeKey := fmt.Sprintf("%s/%s/node-%d", ZKRootPath, d.service, d.port) // Key for this node in Zookeeper

	for range ticker.C {
		now := time.Now().UnixMilli()

		d.mu.Lock()
		// If local time is less than lastTime, system clock went backwards! Alert here.
		if now < d.lastTime {
			d.mu.Unlock()
			log.Printf("Clock rollback detected during heartbeat! Local: %d, Last: %d", now, d.lastTime)
			continue
		}
		d.lastTime = now
		d.mu.Unlock()

		info := NodeInfo{
			WorkerID: d.workerID,
			LastTime: now,
		}
		data, _ := json.Marshal(info)

		// Ignore errors, since Zookeeper may occasionally be unavailable
		d.zkClient.Set(nodeKey, data, -1)

		// Update local file cache as well
		d.saveLocalCache(info)
	}
}

// ensurePath creates a ZK path if needed.
func (d *NodeDriver) ensurePath(path string) {
	exists, _, _ := d.zkClient.Exists(path)
	if !exists {
		d.zkClient.Create(path, []byte{}, 0, zk.WorldACL(zk.PermAll))
	}
}

// saveLocalCache saves the given NodeInfo to a file for local state recovery.
func (d *NodeDriver) saveLocalCache(info NodeInfo) {
	data, _ := json.Marshal(info)
	fileName := fmt.Sprintf(".node_cache_%d", d.port)
	os.WriteFile(fileName, data, 0644)
}

// loadLocalCache loads NodeInfo from the local cache file, if present.
func (d *NodeDriver) loadLocalCache() (NodeInfo, error) {
	fileName := fmt.Sprintf(".node_cache_%d", d.port)
	data, err := os.ReadFile(fileName)
	if err != nil {
		return NodeInfo{}, err
	}
	var info NodeInfo
	json.Unmarshal(data, &info)
	return info, nil
}

func main() {
	// NOTE: This code requires a local Zookeeper at localhost:2181 to run.
	// You can use Docker to start Zookeeper for local testing:
	// docker run --name some-zookeeper -p 2181:2181 -d zookeeper

	zkServers := []string{"127.0.0.1:2181"}

	// Start the UUID service, simulating a worker on port 8080
	driver, err := NewNodeDriver(zkServers, "order-service", 8080)
	if err != nil {
		log.Fatalf("Failed to init node driver: %v", err)
	}

	log.Println("Start generating UUIDs...")

	var wg sync.WaitGroup
	// Launch 10 goroutines concurrently to generate UUIDs in parallel,
	// each generating 100
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				id, err := driver.NextUUID()
				if err != nil {
					log.Println(err)
				} else {
					fmt.Println(id)
				}
			}
		}()
	}
	wg.Wait()
	log.Println("Done.")
}
