package bridge

// Named backend operations.
const (
	OpConnectDocker       = "connect_docker"
	OpDisconnectDocker    = "disconnect_docker"
	OpIsDockerConnected   = "is_docker_connected"
	OpConnectionStatus    = "get_docker_connection_status"
	OpSystemInfo          = "get_system_info"
	OpSystemStats         = "get_system_stats"
	OpTestConnection      = "test_docker_connection"
	OpDockerVersion       = "get_docker_version"
	OpListContainers      = "list_containers_cmd"
	OpGetContainer        = "get_container_cmd"
	OpContainerDetails    = "get_container_details"
	OpCreateContainer     = "create_container_cmd"
	OpStartContainer      = "start_container_cmd"
	OpStopContainer       = "stop_container_cmd"
	OpRestartContainer    = "restart_container_cmd"
	OpPauseContainer      = "pause_container_cmd"
	OpUnpauseContainer    = "unpause_container_cmd"
	OpKillContainer       = "kill_container_cmd"
	OpRemoveContainer     = "remove_container_cmd"
	OpRenameContainer     = "rename_container_cmd"
	OpContainerStats      = "get_container_stats_cmd"
	OpContainerProcesses  = "get_container_processes_cmd"
	OpContainerLogs       = "get_container_logs_cmd"
	OpListImages          = "get_images"
	OpImageDetails        = "get_image_details"
	OpRemoveImage         = "remove_image_cmd"
	OpPullImage           = "pull_image_cmd"
	OpListNetworks        = "get_networks"
	OpNetworkDetails      = "get_network_details"
	OpCreateNetwork       = "create_network_cmd"
	OpRemoveNetwork       = "remove_network_cmd"
	OpConnectNetwork      = "connect_network_cmd"
	OpDisconnectNetwork   = "disconnect_network_cmd"
	OpPruneNetworks       = "prune_networks_cmd"
	OpListVolumes         = "get_volumes"
	OpVolumeDetails       = "get_volume_details"
	OpCreateVolume        = "create_volume_cmd"
	OpRemoveVolume        = "remove_volume_cmd"
	OpPruneVolumes        = "prune_volumes_cmd"
)
